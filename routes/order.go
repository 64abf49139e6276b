package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/framecart/eyewear-api/controllers/order"
	"github.com/framecart/eyewear-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, publisher *orderControllers.OrderPublisher) {
	orders := r.Group("/orders")
	{
		// Checkout: the client posts its cart lines, the server re-prices them
		orders.POST("/place", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, publisher))

		// Fetch orders for the caller
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))
		orders.GET("/:orderID", middleware.ValidateToken, orderControllers.GetOrderByIDHandler(db))

		// Admin endpoints
		orders.GET("/", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))
		orders.PUT("/:orderID/status", middleware.ValidateAPIKey, orderControllers.UpdateOrderStatusHandler(db))
		orders.PUT("/:orderID/payment-status", middleware.ValidateAPIKey, orderControllers.UpdatePaymentStatusHandler(db))
		orders.DELETE("/:orderID", middleware.ValidateAPIKey, orderControllers.DeleteOrderHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
	}
}
