package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

// GetLensPackages lists the active lens add-ons the configurator offers.
func GetLensPackages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("active = ?", true)
		if lensType := c.Query("lens_type"); lensType != "" {
			query = query.Where("lens_type = ?", lensType)
		}

		var packages []models.LensPackage
		if err := query.Order("lens_type, package_name, thickness").Find(&packages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lens packages"})
			return
		}
		c.JSON(http.StatusOK, packages)
	}
}

type lensPackageInput struct {
	LensType    string  `json:"lens_type" binding:"required"`
	PackageName string  `json:"package_name" binding:"required"`
	Thickness   string  `json:"thickness" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Active      *bool   `json:"active"`
}

func CreateLensPackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input lensPackageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		pkg := models.LensPackage{
			LensType:    input.LensType,
			PackageName: input.PackageName,
			Thickness:   input.Thickness,
			Price:       input.Price,
			Active:      true,
		}
		if input.Active != nil {
			pkg.Active = *input.Active
		}

		if err := db.Create(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lens package"})
			return
		}
		c.JSON(http.StatusCreated, pkg)
	}
}

func UpdateLensPackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var pkg models.LensPackage
		if err := db.First(&pkg, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Lens package not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lens package"})
			}
			return
		}

		var input lensPackageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		pkg.LensType = input.LensType
		pkg.PackageName = input.PackageName
		pkg.Thickness = input.Thickness
		pkg.Price = input.Price
		if input.Active != nil {
			pkg.Active = *input.Active
		}

		if err := db.Save(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lens package"})
			return
		}
		c.JSON(http.StatusOK, pkg)
	}
}

func DeleteLensPackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.LensPackage{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lens package"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lens package not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Lens package deleted"})
	}
}
