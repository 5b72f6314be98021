// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Line represents one product entry in a cart. The product is snapshotted
// at add time; Quantity never exceeds the snapshot's stock.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// Subtotal returns the line's contribution to the cart total, using the
// effective (discounted) unit price.
func (l *Line) Subtotal() float64 {
	return l.Product.EffectivePrice() * float64(l.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	Lines         int     `json:"lines"`          // Number of distinct lines
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	Total         float64 `json:"total"`          // Sum of effective-price subtotals
}

// Snapshot is an immutable view of a cart handed to observers and HTTP
// responses after each mutation.
type Snapshot struct {
	SessionID string    `json:"session_id,omitempty"`
	Items     []Line    `json:"items"`
	Totals    Totals    `json:"totals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
