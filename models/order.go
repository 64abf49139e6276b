package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Confirmed by seller
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Reference     string        `gorm:"uniqueIndex" json:"reference"` // gateway cart id
	UserID        string        `gorm:"not null" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	CouponCode    string        `json:"coupon_code"`
	ShippingCost  float64       `json:"shipping_cost"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod string        `json:"payment_method"` // e.g. "card", "cod"
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderItem snapshots the product, variant and lens configuration at
// purchase time so later catalog edits don't rewrite order history.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	VariantID    *uint   `json:"variant_id,omitempty"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Color        string  `json:"color,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	Weight       float64 `json:"weight"`
	Quantity     int     `json:"quantity"`

	// Lens configuration snapshot, empty for frame-only purchases.
	LensType           string  `json:"lens_type,omitempty"`
	LensPackage        string  `json:"lens_package,omitempty"`
	LensThickness      string  `json:"lens_thickness,omitempty"`
	PrescriptionOption string  `json:"prescription_option,omitempty"`
	PrescriptionImage  string  `json:"prescription_image,omitempty"`
	LensPrice          float64 `json:"lens_price"`
}

// LineTotal is the price of this row: (frame + lens add-on) * quantity.
func (i OrderItem) LineTotal() float64 {
	return (i.UnitPrice + i.LensPrice) * float64(i.Quantity)
}
