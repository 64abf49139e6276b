package couponControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

type CouponInput struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=percent fixed"`
	Value       float64    `json:"value" binding:"required,gt=0"`
	MinSubtotal float64    `json:"min_subtotal"`
	UsageLimit  int        `json:"usage_limit"`
	Active      *bool      `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type ValidateInput struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		coupon := models.Coupon{
			Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
			Type:        models.DiscountType(input.Type),
			Value:       input.Value,
			MinSubtotal: input.MinSubtotal,
			UsageLimit:  input.UsageLimit,
			Active:      true,
			ExpiresAt:   input.ExpiresAt,
		}
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if coupon.Type == models.DiscountPercent && coupon.Value > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percent discount cannot exceed 100"})
			return
		}

		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// GET /admin/coupons
func GetCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// PUT /admin/coupons/:id
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var coupon models.Coupon
		if err := db.First(&coupon, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupon"})
			}
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		coupon.Type = models.DiscountType(input.Type)
		coupon.Value = input.Value
		coupon.MinSubtotal = input.MinSubtotal
		coupon.UsageLimit = input.UsageLimit
		coupon.ExpiresAt = input.ExpiresAt
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /admin/coupons/:id
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Coupon{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}

// POST /user/coupons/validate
// Lets the checkout page preview a discount before placing the order. The
// order transaction re-validates with the same model logic.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var coupon models.Coupon
		code := strings.ToUpper(strings.TrimSpace(input.Code))
		if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupon"})
			}
			return
		}

		discount, err := coupon.Discount(input.Subtotal, time.Now())
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":     coupon.Code,
			"discount": discount,
			"total":    input.Subtotal - discount,
		})
	}
}
