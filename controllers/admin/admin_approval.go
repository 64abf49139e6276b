package adminController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

// ApprovalInput identifies the admin account an approval decision targets.
type ApprovalInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ListPendingAdmins returns the accounts that signed in via Google but have
// not been approved yet. They cannot use any admin endpoint until approved.
func ListPendingAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Admin
		if err := db.Where("approved = ?", false).
			Order("created_at ASC").
			Find(&pending).Error; err != nil {
			slog.Error("fetch pending admins", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending admins"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// ApproveAdmin flips the approval flag. Approving an already-approved admin
// is a no-op that still reports success.
func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApprovalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var admin models.Admin
		if err := db.Where("email = ?", input.Email).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
				return
			}
			slog.Error("fetch admin for approval", "email", input.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin"})
			return
		}

		if err := db.Model(&admin).Update("approved", true).Error; err != nil {
			slog.Error("approve admin", "email", input.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve admin"})
			return
		}

		slog.Info("admin approved", "email", admin.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Admin approved"})
	}
}

// RejectAdmin deletes a pending admin account. Approved admins are out of
// scope here; demoting one is a deliberate manual action, not a rejection.
func RejectAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApprovalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result := db.Where("email = ? AND approved = ?", input.Email, false).
			Delete(&models.Admin{})
		if result.Error != nil {
			slog.Error("reject admin", "email", input.Email, "error", result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject admin"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending admin with that email"})
			return
		}

		slog.Info("admin rejected", "email", input.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Admin rejected"})
	}
}
