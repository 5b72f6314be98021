// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a placed order
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Email       string      `gorm:"not null;size:255" json:"email"`
	Status      OrderStatus `gorm:"not null;default:'placed'" json:"status"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Total    float64 `gorm:"not null" json:"total"`
	Currency string  `gorm:"size:3;default:'USD'" json:"currency"`

	// Shipping address snapshot
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a product snapshot captured at checkout time
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID int       `gorm:"not null;index" json:"product_id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Thumbnail string    `gorm:"size:500" json:"thumbnail"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"` // Discounted price per unit
	Quantity  int       `gorm:"not null" json:"quantity"`
	LineTotal float64   `gorm:"not null" json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
}

// Address represents the shipping address embedded in an order
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// CanBeCancelled checks if order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPlaced || o.Status == OrderStatusConfirmed
}

// ItemCount returns the total quantity across all items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// generateOrderNumber builds a unique order number from the row ID.
// Format: ORD-YYYYMMDD-XXXXX
func generateOrderNumber(orderID uint) string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().UTC().Format("20060102"), orderID)
}
