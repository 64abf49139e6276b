package cartstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), NewMemoryStorage())
	require.NoError(t, err)
	return s
}

func frameLine(productID, variantID uint, price float64, qty int) LineItem {
	return LineItem{
		ProductID: productID,
		VariantID: variantID,
		Name:      "Round Frame",
		UnitPrice: price,
		Quantity:  qty,
	}
}

func lensLine(productID uint, lensType, pkg, thickness string, price, lensPrice float64, qty int) LineItem {
	return LineItem{
		ProductID: productID,
		Name:      "Round Frame",
		UnitPrice: price,
		Quantity:  qty,
		Lens: &LensConfig{
			Type:           lensType,
			Package:        pkg,
			Thickness:      thickness,
			TotalLensPrice: lensPrice,
		},
	}
}

func TestAddItemMergesOnIdenticalKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, lensLine(1, "single-vision", "standard", "1.56", 1000, 200, 2)))
	require.NoError(t, s.AddItem(ctx, lensLine(1, "single-vision", "standard", "1.56", 1000, 200, 3)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.NotEmpty(t, items[0].ID)
}

func TestAddItemMergeKeepsExistingFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := frameLine(1, 0, 1000, 1)
	first.Image = "original.jpg"
	require.NoError(t, s.AddItem(ctx, first))

	second := frameLine(1, 0, 900, 2) // different price and image must not win
	second.Image = "other.jpg"
	require.NoError(t, s.AddItem(ctx, second))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1000.0, items[0].UnitPrice)
	assert.Equal(t, "original.jpg", items[0].Image)
}

func TestAddItemDoesNotMergeOnAnyKeyDifference(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		a, b LineItem
	}{
		{"product differs", frameLine(1, 0, 100, 1), frameLine(2, 0, 100, 1)},
		{"variant differs", frameLine(1, 1, 100, 1), frameLine(1, 2, 100, 1)},
		{"lens type differs",
			lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1),
			lensLine(1, "progressive", "standard", "1.56", 100, 50, 1)},
		{"lens package differs",
			lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1),
			lensLine(1, "single-vision", "blue-light", "1.56", 100, 50, 1)},
		{"lens thickness differs",
			lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1),
			lensLine(1, "single-vision", "standard", "1.67", 100, 50, 1)},
		{"lens vs no lens",
			frameLine(1, 0, 100, 1),
			lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, s.AddItem(ctx, tc.a))
			require.NoError(t, s.AddItem(ctx, tc.b))

			items := s.Items()
			require.Len(t, items, 2)
			assert.NotEqual(t, items[0].ID, items[1].ID)
		})
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, frameLine(1, 0, 100, 2)))
	require.NoError(t, s.UpdateQuantity(ctx, 1, 0, 0, ""))

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
}

func TestUpdateQuantitySetsAllMatches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, frameLine(1, 0, 100, 2)))
	require.NoError(t, s.UpdateQuantity(ctx, 1, 0, 7, ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemoveItemBroadMatchDeletesAllLensConfigurations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1)))
	require.NoError(t, s.AddItem(ctx, lensLine(1, "progressive", "standard", "1.67", 100, 80, 1)))
	require.NoError(t, s.AddItem(ctx, frameLine(2, 0, 100, 1)))

	// No lens type on the filter: both configurations of product 1 go.
	require.NoError(t, s.RemoveItem(ctx, 1, 0, ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ProductID)
}

func TestRemoveItemLensTypeNarrowsMatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, lensLine(1, "single-vision", "standard", "1.56", 100, 50, 1)))
	require.NoError(t, s.AddItem(ctx, lensLine(1, "progressive", "standard", "1.67", 100, 80, 1)))

	require.NoError(t, s.RemoveItem(ctx, 1, 0, "progressive"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "single-vision", items[0].Lens.Type)
}

func TestRemoveItemVariantIsNotAWildcard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, frameLine(1, 0, 100, 1)))
	require.NoError(t, s.AddItem(ctx, frameLine(1, 4, 100, 1)))

	// Filtering without a variant only removes the variant-less line.
	require.NoError(t, s.RemoveItem(ctx, 1, 0, ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(4), items[0].VariantID)
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// (1000 + 200) * 2 = 2400 and 500 * 1 = 500.
	require.NoError(t, s.AddItem(ctx, lensLine(1, "single-vision", "standard", "1.56", 1000, 200, 2)))
	require.NoError(t, s.AddItem(ctx, frameLine(2, 0, 500, 1)))

	assert.Equal(t, 2900.0, s.TotalPrice())
	assert.Equal(t, 3, s.TotalItems())
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddItem(ctx, frameLine(1, 0, 100, 3)))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, 0.0, s.TotalPrice())
}

func TestStatePersistsAcrossStores(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	s1, err := New(ctx, storage)
	require.NoError(t, err)
	require.NoError(t, s1.AddItem(ctx, frameLine(1, 0, 250, 2)))

	// A second store over the same storage sees the persisted lines.
	s2, err := New(ctx, storage)
	require.NoError(t, err)
	assert.Equal(t, 2, s2.TotalItems())
	assert.Equal(t, 500.0, s2.TotalPrice())
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var snapshots [][]LineItem
	s.Subscribe(func(items []LineItem) {
		snapshots = append(snapshots, items)
	})

	require.NoError(t, s.AddItem(ctx, frameLine(1, 0, 100, 1)))
	require.NoError(t, s.Clear(ctx))

	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[0], 1)
	assert.Empty(t, snapshots[1])
}

func TestVisibilityFlags(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.IsOpen())
	s.Open()
	assert.True(t, s.IsOpen())
	s.Toggle()
	assert.False(t, s.IsOpen())
	s.Toggle()
	assert.True(t, s.IsOpen())
	s.Close()
	assert.False(t, s.IsOpen())
}
