package models

import (
	"errors"
	"time"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

var (
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrCouponMinSubtotal = errors.New("order subtotal below coupon minimum")
)

type Coupon struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string       `gorm:"unique;not null" json:"code"`
	Type        DiscountType `gorm:"type:VARCHAR(10);not null" json:"type"`
	Value       float64      `gorm:"not null" json:"value"` // percent (0-100) or fixed amount
	MinSubtotal float64      `json:"min_subtotal"`
	UsageLimit  int          `json:"usage_limit"` // 0 means unlimited
	UsedCount   int          `json:"used_count"`
	Active      bool         `gorm:"default:true" json:"active"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Discount validates the coupon against a subtotal and returns the discount
// amount. The checkout transaction and the public validate endpoint share
// this so they can never disagree.
func (c Coupon) Discount(subtotal float64, now time.Time) (float64, error) {
	if !c.Active {
		return 0, ErrCouponInactive
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return 0, ErrCouponExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return 0, ErrCouponExhausted
	}
	if subtotal < c.MinSubtotal {
		return 0, ErrCouponMinSubtotal
	}

	var discount float64
	switch c.Type {
	case DiscountPercent:
		discount = subtotal * c.Value / 100
	case DiscountFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}
