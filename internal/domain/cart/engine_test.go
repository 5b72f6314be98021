package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func testProduct(id int, price float64, stock int) catalog.Product {
	return catalog.Product{
		ID:       id,
		Title:    "Product",
		Price:    price,
		Stock:    stock,
		Category: "electronics",
	}
}

func Test_Cart_Add(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(c *Cart)
		expectedLines int
		expectedCount int
	}{
		{
			name: "adding in-stock product yields one line with quantity 1",
			setup: func(c *Cart) {
				c.Add(testProduct(1, 10, 5))
			},
			expectedLines: 1,
			expectedCount: 1,
		},
		{
			name: "adding out-of-stock product is a silent no-op",
			setup: func(c *Cart) {
				c.Add(testProduct(1, 10, 0))
			},
			expectedLines: 0,
			expectedCount: 0,
		},
		{
			name: "adding the same product twice increments one line",
			setup: func(c *Cart) {
				p := testProduct(1, 10, 5)
				c.Add(p)
				c.Add(p)
			},
			expectedLines: 1,
			expectedCount: 2,
		},
		{
			name: "increment is capped at stock",
			setup: func(c *Cart) {
				p := testProduct(1, 10, 2)
				c.Add(p)
				c.Add(p)
				c.Add(p)
				c.Add(p)
			},
			expectedLines: 1,
			expectedCount: 2,
		},
		{
			name: "distinct products get distinct lines in insertion order",
			setup: func(c *Cart) {
				c.Add(testProduct(2, 20, 5))
				c.Add(testProduct(1, 10, 5))
			},
			expectedLines: 2,
			expectedCount: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := New("session")
			// when
			tc.setup(c)
			// then
			assert.Len(t, c.Lines(), tc.expectedLines)
			assert.Equal(t, tc.expectedCount, c.ItemCount())
		})
	}
}

func Test_Cart_Add_PreservesOrder(t *testing.T) {
	c := New("session")
	c.Add(testProduct(3, 30, 5))
	c.Add(testProduct(1, 10, 5))
	c.Add(testProduct(2, 20, 5))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 3, lines[0].Product.ID)
	assert.Equal(t, 1, lines[1].Product.ID)
	assert.Equal(t, 2, lines[2].Product.ID)
}

func Test_Cart_UpdateQuantity(t *testing.T) {
	testCases := []struct {
		name          string
		quantity      int
		expectedLines int
		expectedCount int
	}{
		{name: "sets quantity", quantity: 3, expectedLines: 1, expectedCount: 3},
		{name: "clamps to stock", quantity: 99, expectedLines: 1, expectedCount: 5},
		{name: "zero removes the line", quantity: 0, expectedLines: 0, expectedCount: 0},
		{name: "negative removes the line", quantity: -1, expectedLines: 0, expectedCount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := New("session")
			c.Add(testProduct(1, 10, 5))
			// when
			c.UpdateQuantity(1, tc.quantity)
			// then
			assert.Len(t, c.Lines(), tc.expectedLines)
			assert.Equal(t, tc.expectedCount, c.ItemCount())
		})
	}
}

func Test_Cart_UpdateQuantity_UnknownProductIsNoOp(t *testing.T) {
	c := New("session")
	c.Add(testProduct(1, 10, 5))

	c.UpdateQuantity(42, 3)

	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.ItemCount())
}

func Test_Cart_Remove(t *testing.T) {
	c := New("session")
	c.Add(testProduct(1, 10, 5))
	c.Add(testProduct(2, 20, 5))

	c.Remove(1)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].Product.ID)

	// Removing an absent product is not an error
	c.Remove(99)
	assert.Len(t, c.Lines(), 1)
}

func Test_Cart_ItemCount_SumsQuantities(t *testing.T) {
	c := New("session")
	c.Add(testProduct(1, 10, 5))
	c.UpdateQuantity(1, 2)
	c.Add(testProduct(2, 20, 5))
	c.UpdateQuantity(2, 3)

	// Two lines of quantity 2 and 3 count as 5 items
	assert.Equal(t, 5, c.ItemCount())
	assert.Len(t, c.Lines(), 2)
}

func Test_Cart_Total(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(c *Cart)
		expected float64
	}{
		{
			name:     "empty cart totals zero",
			setup:    func(c *Cart) {},
			expected: 0,
		},
		{
			name: "discounted line applies effective price",
			setup: func(c *Cart) {
				p := testProduct(1, 100, 10)
				p.DiscountPercentage = 20
				c.Add(p)
				c.UpdateQuantity(1, 2)
			},
			expected: 160.00,
		},
		{
			name: "mixed lines sum subtotals",
			setup: func(c *Cart) {
				c.Add(testProduct(1, 9.99, 10))
				c.Add(testProduct(2, 5.50, 10))
				c.UpdateQuantity(2, 2)
			},
			expected: 9.99 + 2*5.50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New("session")
			tc.setup(c)
			assert.InDelta(t, tc.expected, c.Total(), 1e-9)
		})
	}
}

func Test_Cart_Clear(t *testing.T) {
	c := New("session")
	c.Add(testProduct(1, 10, 5))
	c.Add(testProduct(2, 20, 5))

	c.Clear()

	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0.0, c.Total())
	assert.Empty(t, c.Lines())
}

func Test_Cart_ObserversFireAfterEachMutation(t *testing.T) {
	c := New("session")

	var snapshots []Snapshot
	c.Subscribe(func(s Snapshot) {
		snapshots = append(snapshots, s)
	})

	c.Add(testProduct(1, 10, 5))
	c.UpdateQuantity(1, 3)
	c.Clear()

	require.Len(t, snapshots, 3)
	assert.Equal(t, 1, snapshots[0].Totals.TotalQuantity)
	assert.Equal(t, 3, snapshots[1].Totals.TotalQuantity)
	assert.Equal(t, 0, snapshots[2].Totals.TotalQuantity)
	assert.InDelta(t, 30.0, snapshots[1].Totals.Total, 1e-9)
}

func Test_Cart_ObserversNotFiredOnNoOps(t *testing.T) {
	c := New("session")

	fired := 0
	c.Subscribe(func(Snapshot) { fired++ })

	c.Add(testProduct(1, 10, 0)) // out of stock
	c.Remove(42)                 // absent
	c.UpdateQuantity(42, 3)      // absent

	assert.Zero(t, fired)
}
