package wishlistControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

type ToggleInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /user/wishlist
// Returns the membership rows with the product nested, which is what the
// client state manager extracts its ids from.
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var entries []models.Wishlist
		if err := db.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// POST /user/wishlist/toggle
// Deletes the (user, product) row if present, else creates it. The unique
// index on the pair is the final authority if two toggles race.
func ToggleWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input ToggleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// The product must exist to be wishlisted
		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		var entry models.Wishlist
		err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&entry).Error

		if err == gorm.ErrRecordNotFound {
			entry = models.Wishlist{
				UserID:    userID,
				ProductID: input.ProductID,
			}
			if err := db.Create(&entry).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message":     "Added to wishlist",
				"in_wishlist": true,
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist entry"})
			return
		}

		if err := db.Delete(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":     "Removed from wishlist",
			"in_wishlist": false,
		})
	}
}

// GET /admin/user-wishlist/:user_id
func GetAdminUserWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var entries []models.Wishlist
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}
