package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/framecart/eyewear-api/controllers/payment"
	"github.com/framecart/eyewear-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, client *paymentControllers.Client) {
	payment := r.Group("/payment")
	{
		// Hosted payment page creation
		payment.POST("/place", middleware.ValidateToken, paymentControllers.PaymentRequestHandler(db, client))

		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.TelrWebhookAuth(),
			paymentControllers.TelrWebhookHandler(db),
		)
	}
}
