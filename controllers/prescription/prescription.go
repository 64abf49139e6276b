package prescriptionControllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// UploadPrescription saves the uploaded prescription image and records it
// against the caller. The returned file_url is what the checkout payload
// carries in prescription_image.
func UploadPrescription(db *gorm.DB, uploadDir, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		cleanName := unsafeChars.ReplaceAllString(file.Filename, "_")
		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), cleanName)

		saveDir := filepath.Join(uploadDir, "prescriptions")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload folder: %v", err),
			})
			return
		}

		savePath := filepath.Join(saveDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to save file: %v", err),
			})
			return
		}

		fileURL := fmt.Sprintf("%s/uploads/prescriptions/%s", publicBaseURL, filename)

		record, err := models.SavePrescription(db, userID, filename, fileURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record prescription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "File uploaded successfully",
			"file_url": record.FileURL,
			"id":       record.ID,
		})
	}
}

// GET /user/prescriptions
func GetPrescriptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		files, err := models.GetUserPrescriptions(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prescriptions"})
			return
		}
		c.JSON(http.StatusOK, files)
	}
}

// DeletePrescription removes the record and the file on disk. Users may only
// delete their own uploads.
func DeletePrescription(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
			return
		}

		var record models.Prescription
		if err := db.First(&record, "id = ? AND user_id = ?", id, userIDVal.(string)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query prescription"})
			return
		}

		filePath := filepath.Join(uploadDir, "prescriptions", record.FileName)
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file from disk"})
			return
		}

		if err := db.Delete(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prescription record"})
			return
		}

		slog.Info("prescription deleted", "file", record.FileName, "user", record.UserID)
		c.JSON(http.StatusOK, gin.H{"message": "Prescription deleted successfully"})
	}
}
