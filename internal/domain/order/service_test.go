package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func line(id int, title string, price, discount float64, stock, quantity int) cart.Line {
	return cart.Line{
		Product: catalog.Product{
			ID:                 id,
			Title:              title,
			Price:              price,
			DiscountPercentage: discount,
			Stock:              stock,
		},
		Quantity: quantity,
		AddedAt:  time.Now(),
	}
}

func Test_BuildOrderItems_SnapshotsLivePrices(t *testing.T) {
	// given a cart line added when the product cost 100
	lines := []cart.Line{line(1, "Keyboard", 100, 0, 10, 2)}

	// when the live price has dropped to 80 with a 25% discount
	fresh := map[int]*catalog.Product{
		1: {ID: 1, Title: "Keyboard", Price: 80, DiscountPercentage: 25, Stock: 10},
	}

	items, subtotal, err := buildOrderItems(lines, fresh)

	// then the order carries the live discounted price, not the cart's
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 60.0, items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 120.0, items[0].LineTotal, 1e-9)
	assert.InDelta(t, 120.0, subtotal, 1e-9)
}

func Test_BuildOrderItems_MultipleLines(t *testing.T) {
	lines := []cart.Line{
		line(1, "Keyboard", 100, 20, 10, 2),
		line(2, "Mouse", 25, 0, 5, 1),
	}
	fresh := map[int]*catalog.Product{
		1: {ID: 1, Title: "Keyboard", Price: 100, DiscountPercentage: 20, Stock: 10},
		2: {ID: 2, Title: "Mouse", Price: 25, Stock: 5},
	}

	items, subtotal, err := buildOrderItems(lines, fresh)

	require.NoError(t, err)
	require.Len(t, items, 2)
	// 100 * 0.8 * 2 + 25
	assert.InDelta(t, 185.0, subtotal, 1e-9)
	assert.Equal(t, "Keyboard", items[0].Title)
	assert.Equal(t, 2, items[0].Quantity)
}

func Test_BuildOrderItems_RejectsInsufficientStock(t *testing.T) {
	// given a line whose quantity exceeds the live stock
	lines := []cart.Line{line(1, "Keyboard", 100, 0, 10, 4)}
	fresh := map[int]*catalog.Product{
		1: {ID: 1, Title: "Keyboard", Price: 100, Stock: 3},
	}

	_, _, err := buildOrderItems(lines, fresh)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func Test_BuildOrderItems_RejectsMissingProduct(t *testing.T) {
	lines := []cart.Line{line(99, "Ghost", 10, 0, 1, 1)}

	_, _, err := buildOrderItems(lines, map[int]*catalog.Product{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer available")
}

func Test_Order_CanBeCancelled(t *testing.T) {
	testCases := []struct {
		status   OrderStatus
		expected bool
	}{
		{OrderStatusPlaced, true},
		{OrderStatusConfirmed, true},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			o := &Order{Status: tc.status}
			assert.Equal(t, tc.expected, o.CanBeCancelled())
		})
	}
}

func Test_Order_ItemCount(t *testing.T) {
	o := &Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, o.ItemCount())
}

func Test_GenerateOrderNumber_Format(t *testing.T) {
	number := generateOrderNumber(42)
	assert.Regexp(t, `^ORD-\d{8}-00042$`, number)
}
