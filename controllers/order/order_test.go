package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecart/eyewear-api/models"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   float64
	}{
		{"zero weight ships free", 0, 0},
		{"negative treated as free", -1, 0},
		{"first kilo is free tier", 1, 0},
		{"just over a kilo", 1.5, 30},
		{"full first tier", 31, 30},
		{"second tier", 31.5, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shippingCost(tt.weight))
		})
	}
}

func TestMapOrderStatus(t *testing.T) {
	for _, s := range []string{
		"pending", "confirmed", "ready_to_ship", "shipped",
		"delivered", "returned", "cancelled",
	} {
		got, err := mapOrderStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, models.OrderStatus(s), got)
	}

	// Case-insensitive on input
	got, err := mapOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}

func TestMapPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "failed", "refunded"} {
		got, err := mapPaymentStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, models.PaymentStatus(s), got)
	}

	_, err := mapPaymentStatus("iou")
	assert.Error(t, err)
}

func TestGenerateOrderRefUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := generateOrderRef()
		require.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
