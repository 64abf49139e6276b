package productcontroller

import (
	"encoding/json"
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

func uploadDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "/var/www/framecart/uploads"
}

// variantInput is the JSON shape accepted in the "variants" form field.
type variantInput struct {
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	SalePrice float64 `json:"sale_price"`
	Stock     int     `json:"stock"`
}

// CreateProduct creates a new frame with categories, variants and an image
// upload in one multipart request.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		salePriceStr := c.PostForm("sale_price")
		weightStr := c.PostForm("weight")
		if name == "" || salePriceStr == "" || weightStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, sale_price, and weight are required"})
			return
		}

		// Optional fields
		brand := c.PostForm("brand")
		description := c.PostForm("description")
		frameShape := c.PostForm("frame_shape")
		frameMaterial := c.PostForm("frame_material")
		regularPriceStr := c.PostForm("regular_price")
		baseCostStr := c.PostForm("base_cost")
		stockStr := c.PostForm("stock")
		categoryIDsStr := c.PostForm("category_ids")
		variantsJSON := c.PostForm("variants")

		// Convert numerics
		salePrice, err := strconv.ParseFloat(salePriceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_price"})
			return
		}
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight"})
			return
		}

		var regularPrice, baseCost float64
		if regularPriceStr != "" {
			if rp, parseErr := strconv.ParseFloat(regularPriceStr, 64); parseErr == nil {
				regularPrice = rp
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid regular_price"})
				return
			}
		}
		if baseCostStr != "" {
			if bc, parseErr := strconv.ParseFloat(baseCostStr, 64); parseErr == nil {
				baseCost = bc
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base_cost"})
				return
			}
		}
		var stock int
		if stockStr != "" {
			if s, parseErr := strconv.Atoi(stockStr); parseErr == nil {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		// Categories
		var categories []models.Category
		if categoryIDsStr != "" {
			idTokens := strings.Split(categoryIDsStr, ",")
			var parsedIDs []uint
			for _, tok := range idTokens {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				} else {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
			}
			if len(parsedIDs) > 0 {
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		// Variants
		var variants []models.ProductVariant
		if variantsJSON != "" {
			var inputs []variantInput
			if err := json.Unmarshal([]byte(variantsJSON), &inputs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variants format"})
				return
			}
			for _, v := range inputs {
				if v.Color == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Variant color is required"})
					return
				}
				variants = append(variants, models.ProductVariant{
					Color:     v.Color,
					Image:     v.Image,
					SalePrice: v.SalePrice,
					Stock:     v.Stock,
				})
			}
		}

		// Image upload
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		filename := strings.ReplaceAll(file.Filename, " ", "_")

		saveDir := filepath.Join(uploadDir(), "products")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
			return
		}
		savePath := filepath.Join(saveDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}

		imageURL := fmt.Sprintf("/uploads/products/%s", filename)

		newProduct := models.Product{
			Name:          name,
			Brand:         brand,
			Description:   description,
			FrameShape:    frameShape,
			FrameMaterial: frameMaterial,
			SalePrice:     salePrice,
			RegularPrice:  regularPrice,
			BaseCost:      baseCost,
			Weight:        weight,
			Stock:         stock,
			Image:         imageURL,
			Categories:    categories,
			Variants:      variants,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
