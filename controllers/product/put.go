package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/models"
)

// UpdateProduct updates scalar fields, categories and optionally the image.
// Fields absent from the form are left unchanged.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("brand"); v != "" {
			product.Brand = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("frame_shape"); v != "" {
			product.FrameShape = v
		}
		if v := c.PostForm("frame_material"); v != "" {
			product.FrameMaterial = v
		}

		numeric := map[string]*float64{
			"sale_price":    &product.SalePrice,
			"regular_price": &product.RegularPrice,
			"base_cost":     &product.BaseCost,
			"weight":        &product.Weight,
		}
		for field, target := range numeric {
			if v := c.PostForm(field); v != "" {
				parsed, parseErr := strconv.ParseFloat(v, 64)
				if parseErr != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + field})
					return
				}
				*target = parsed
			}
		}
		if v := c.PostForm("stock"); v != "" {
			stock, parseErr := strconv.Atoi(v)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = stock
		}

		// Optional new image
		if file, fileErr := c.FormFile("image"); fileErr == nil {
			filename := strings.ReplaceAll(file.Filename, " ", "_")
			saveDir := filepath.Join(uploadDir(), "products")
			if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			product.Image = fmt.Sprintf("/uploads/products/%s", filename)
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		// Replace category associations when provided
		if categoryIDsStr := c.PostForm("category_ids"); categoryIDsStr != "" {
			var parsedIDs []uint
			for _, tok := range strings.Split(categoryIDsStr, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				id64, parseErr := strconv.ParseUint(tok, 10, 64)
				if parseErr != nil {
					tx.Rollback()
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
				parsedIDs = append(parsedIDs, uint(id64))
			}

			var categories []models.Category
			if err := tx.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
			if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
				return
			}
		}

		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit update"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
