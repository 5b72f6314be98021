// internal/domain/cart/engine.go
package cart

import (
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Observer is invoked with a fresh snapshot after every cart mutation.
type Observer func(Snapshot)

// Cart maintains the set of items one session intends to purchase.
// Every operation is a total function: invalid input is clamped or
// ignored, never rejected with an error. Lines keep insertion order and
// are unique per product ID.
type Cart struct {
	mu         sync.Mutex
	sessionID  string
	lines      []Line
	observers  []Observer
	createdAt  time.Time
	updatedAt  time.Time
	lastActive time.Time
}

// New creates an empty cart for a session
func New(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		sessionID:  sessionID,
		lines:      []Line{},
		createdAt:  now,
		updatedAt:  now,
		lastActive: now,
	}
}

// Subscribe registers an observer fired after each mutation
func (c *Cart) Subscribe(fn Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Add puts one unit of the product into the cart. Out-of-stock products
// are ignored silently; an existing line is incremented and clamped to
// the product's stock.
func (c *Cart) Add(product catalog.Product) {
	c.mu.Lock()

	if !product.IsInStock() {
		c.touch()
		c.mu.Unlock()
		return
	}

	found := false
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity = clamp(c.lines[i].Quantity+1, product.Stock)
			// Refresh the snapshot so stock/price drift is picked up
			c.lines[i].Product = product
			found = true
			break
		}
	}

	if !found {
		c.lines = append(c.lines, Line{
			Product:  product,
			Quantity: 1,
			AddedAt:  time.Now().UTC(),
		})
	}

	c.markUpdated()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Remove deletes the line with the given product ID; no-op if absent
func (c *Cart) Remove(productID int) {
	c.mu.Lock()

	removed := false
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			removed = true
			break
		}
	}

	if !removed {
		c.touch()
		c.mu.Unlock()
		return
	}

	c.markUpdated()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// UpdateQuantity sets a line's quantity, clamped to the line's stock
// snapshot. A quantity below 1 removes the line. Unknown product IDs are
// ignored.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()

	found := false
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = clamp(quantity, c.lines[i].Product.Stock)
			found = true
			break
		}
	}

	if !found {
		c.touch()
		c.mu.Unlock()
		return
	}

	c.markUpdated()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Clear empties the cart unconditionally
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = []Line{}
	c.markUpdated()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// ItemCount returns the sum of all line quantities
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Total returns the sum of effective-price subtotals across all lines.
// Rounding is left to the display layer.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Snapshot returns the current cart state
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// LastActive returns the time of the most recent operation, used by the
// store's idle sweeper.
func (c *Cart) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Cart) snapshotLocked() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)

	totals := Totals{Lines: len(lines)}
	for i := range lines {
		totals.TotalQuantity += lines[i].Quantity
		totals.Total += lines[i].Subtotal()
	}

	return Snapshot{
		SessionID: c.sessionID,
		Items:     lines,
		Totals:    totals,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

func (c *Cart) markUpdated() {
	now := time.Now().UTC()
	c.updatedAt = now
	c.lastActive = now
}

func (c *Cart) touch() {
	c.lastActive = time.Now().UTC()
}

// notify runs outside the cart lock so observers may read the cart
func (c *Cart) notify(snapshot Snapshot) {
	c.mu.Lock()
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
