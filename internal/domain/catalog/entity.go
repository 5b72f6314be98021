// internal/domain/catalog/entity.go
package catalog

// Product represents a product record served by the external catalog API.
// The catalog is read-only from this service's point of view; records are
// fetched, never written back.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

// EffectivePrice returns the unit price after applying the discount
// percentage, if any. No rounding happens here; totals are rounded at
// display time only.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price * (1 - p.DiscountPercentage/100)
	}
	return p.Price
}

// IsInStock reports whether the product can be added to a cart.
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}
