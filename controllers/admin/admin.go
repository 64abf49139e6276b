package adminController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.Admin

		if err := db.Find(&admins).Error; err != nil {
			slog.Error("fetch admins", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}

		c.JSON(http.StatusOK, admins)
	}
}

const lowStockThreshold = 5

// GetNotifications feeds the dashboard badge counters.
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pendingOrders int64
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&pendingOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var lowStockProducts int64
		if err := db.Model(&models.Product{}).
			Where("stock <= ?", lowStockThreshold).
			Count(&lowStockProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var lowStockVariants int64
		if err := db.Model(&models.ProductVariant{}).
			Where("stock <= ?", lowStockThreshold).
			Count(&lowStockVariants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count variants"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"pending_orders":     pendingOrders,
			"low_stock_products": lowStockProducts,
			"low_stock_variants": lowStockVariants,
		})
	}
}
