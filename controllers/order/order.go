package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/framecart/eyewear-api/models"
)

// -------- Request Structs --------

// CheckoutItem is one line of the client-side cart, shipped to the server
// at checkout. Only ids, quantity and the lens selection are trusted;
// prices are recomputed from the database.
type CheckoutItem struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`

	LensType           string `json:"lens_type"`
	LensPackage        string `json:"lens_package"`
	LensThickness      string `json:"lens_thickness"`
	PrescriptionOption string `json:"prescription_option"`
	PrescriptionImage  string `json:"prescription_image"`
}

type PlaceOrderRequest struct {
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	CouponCode    string         `json:"coupon_code"`
	PaymentMethod string         `json:"payment_method" binding:"required"` // e.g. "card", "cod"
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToLower(status)) {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusReadyToShip,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusReturned,
		models.OrderStatusCancelled:
		return models.OrderStatus(strings.ToLower(status)), nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(strings.ToLower(status)) {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
		return models.PaymentStatus(strings.ToLower(status)), nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// shippingCost is weight-tiered: free for zero weight, then one tier per
// started 30kg above the first kilo.
func shippingCost(totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0
	}
	return float64(int(math.Ceil((totalWeight-1)/30.0))) * 30.0
}

// -------- Core Logic --------

// PlaceOrder validates the checkout payload against the catalog, prices it
// server-side and creates the order in one transaction. Returns the created
// order for broadcasting.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal, totalWeight float64
		var orderItems []models.OrderItem

		for _, line := range req.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("product does not exist")
				}
				return err
			}

			unitPrice := product.SalePrice
			color := ""

			// Variant stock is tracked separately from the base product.
			if line.VariantID != nil {
				var variant models.ProductVariant
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("id = ? AND product_id = ?", *line.VariantID, product.ID).
					First(&variant).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errors.New("variant does not exist for product: " + product.Name)
					}
					return err
				}
				if variant.Stock < line.Quantity {
					return errors.New("insufficient stock for variant: " + product.Name + " / " + variant.Color)
				}
				variant.Stock -= line.Quantity
				if err := tx.Save(&variant).Error; err != nil {
					return err
				}
				unitPrice = variant.UnitPrice(product)
				color = variant.Color
			} else {
				if product.Stock < line.Quantity {
					return errors.New("insufficient stock for product: " + product.Name)
				}
				product.Stock -= line.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}

			// Lens add-on price comes from the lens package table, never
			// from the client's computed total.
			var lensPrice float64
			if line.LensType != "" {
				var pkg models.LensPackage
				if err := tx.Where(
					"lens_type = ? AND package_name = ? AND thickness = ? AND active = ?",
					line.LensType, line.LensPackage, line.LensThickness, true,
				).First(&pkg).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errors.New("unknown lens configuration")
					}
					return err
				}
				lensPrice = pkg.Price
			}

			subtotal += (unitPrice + lensPrice) * float64(line.Quantity)
			totalWeight += product.Weight * float64(line.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:          product.ID,
				VariantID:          line.VariantID,
				ProductName:        product.Name,
				ProductImage:       product.Image,
				Color:              color,
				UnitPrice:          unitPrice,
				Weight:             product.Weight,
				Quantity:           line.Quantity,
				LensType:           line.LensType,
				LensPackage:        line.LensPackage,
				LensThickness:      line.LensThickness,
				PrescriptionOption: line.PrescriptionOption,
				PrescriptionImage:  line.PrescriptionImage,
				LensPrice:          lensPrice,
			})
		}

		// Coupon
		var discount float64
		couponCode := strings.ToUpper(strings.TrimSpace(req.CouponCode))
		if couponCode != "" {
			var coupon models.Coupon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("code = ?", couponCode).First(&coupon).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("coupon not found")
				}
				return err
			}

			d, err := coupon.Discount(subtotal, time.Now())
			if err != nil {
				return err
			}
			discount = d

			coupon.UsedCount++
			if err := tx.Save(&coupon).Error; err != nil {
				return err
			}
		}

		shipping := shippingCost(totalWeight)

		order = models.Order{
			Reference:     generateOrderRef(),
			UserID:        userID,
			Items:         orderItems,
			Subtotal:      subtotal,
			Discount:      discount,
			CouponCode:    couponCode,
			ShippingCost:  shipping,
			TotalAmount:   subtotal - discount + shipping,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     time.Now(),
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// Place order (user)
func PlaceOrderHandler(db *gorm.DB, publisher *OrderPublisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastNewOrder(*order)
		publisher.PublishOrderPlaced(c.Request.Context(), *order)

		c.JSON(http.StatusCreated, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler fetches a single order by numeric id or reference.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Where("id::text = ? OR reference = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// Update order status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// Delete order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, orderID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
