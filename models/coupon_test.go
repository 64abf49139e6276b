package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponDiscountPercent(t *testing.T) {
	c := Coupon{Code: "SAVE10", Type: DiscountPercent, Value: 10, Active: true}

	d, err := c.Discount(200, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 20.0, d)
}

func TestCouponDiscountFixed(t *testing.T) {
	c := Coupon{Code: "FLAT50", Type: DiscountFixed, Value: 50, Active: true}

	d, err := c.Discount(200, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 50.0, d)
}

func TestCouponDiscountCappedAtSubtotal(t *testing.T) {
	c := Coupon{Code: "FLAT50", Type: DiscountFixed, Value: 50, Active: true}

	d, err := c.Discount(30, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 30.0, d, "discount must never exceed the subtotal")
}

func TestCouponDiscountRules(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		coupon  Coupon
		wantErr error
	}{
		{
			name:    "inactive",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: false},
			wantErr: ErrCouponInactive,
		},
		{
			name:    "expired",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, ExpiresAt: &past},
			wantErr: ErrCouponExpired,
		},
		{
			name:    "not yet expired",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, ExpiresAt: &future},
			wantErr: nil,
		},
		{
			name:    "usage limit reached",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, UsageLimit: 3, UsedCount: 3},
			wantErr: ErrCouponExhausted,
		},
		{
			name:    "under usage limit",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, UsageLimit: 3, UsedCount: 2},
			wantErr: nil,
		},
		{
			name:    "zero limit means unlimited",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, UsageLimit: 0, UsedCount: 9999},
			wantErr: nil,
		},
		{
			name:    "below minimum subtotal",
			coupon:  Coupon{Type: DiscountFixed, Value: 10, Active: true, MinSubtotal: 500},
			wantErr: ErrCouponMinSubtotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.coupon.Discount(100, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
