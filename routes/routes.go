package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/config"
	orderControllers "github.com/framecart/eyewear-api/controllers/order"
	paymentControllers "github.com/framecart/eyewear-api/controllers/payment"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config,
	publisher *orderControllers.OrderPublisher, telr *paymentControllers.Client) {

	// Public auth routes (rate limited)
	SetupAuthRoutes(r, db)

	// User routes (JWT protected)
	SetupUserRoutes(r, db, cfg)

	// Admin routes (API key protected)
	SetupAdminRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db, publisher)

	// Payment gateway routes
	SetupPaymentRoutes(r, db, telr)
}
