// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// ProductFetcher looks up live catalog data during checkout
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int) (*catalog.Product, error)
}

// Service handles order business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog ProductFetcher
	mailer  *email.Mailer
	logger  *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, fetcher ProductFetcher, mailer *email.Mailer, logger *logrus.Logger) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: fetcher,
		mailer:  mailer,
		logger:  logger,
	}
}

// CheckoutRequest represents order placement data
type CheckoutRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	Notes           string  `json:"notes"`
}

// OrderListResponse represents a page of order history
type OrderListResponse struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// Checkout validates the cart against live catalog data and places an order.
// The cart is cleared only after the order row is committed.
func (s *Service) Checkout(ctx context.Context, userID uint, userEmail string, c *cart.Cart, req *CheckoutRequest) (*Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	fresh := make(map[int]*catalog.Product, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify product %d: %w", line.Product.ID, err)
		}
		fresh[line.Product.ID] = product
	}

	items, subtotal, err := buildOrderItems(lines, fresh)
	if err != nil {
		return nil, err
	}

	newOrder := Order{
		UserID:          userID,
		Email:           userEmail,
		Status:          OrderStatusPlaced,
		Subtotal:        subtotal,
		Total:           subtotal,
		Currency:        "USD",
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items:           items,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		newOrder.OrderNumber = generateOrderNumber(newOrder.ID)
		if err := tx.Model(&newOrder).Update("order_number", newOrder.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to assign order number: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Clear()

	if err := s.mailer.SendOrderConfirmation(userEmail, newOrder.OrderNumber, newOrder.Total); err != nil {
		s.logger.WithError(err).WithField("order_number", newOrder.OrderNumber).
			Error("Failed to send order confirmation email")
	}

	return &newOrder, nil
}

// buildOrderItems snapshots cart lines against live catalog products.
// Quantities above live stock fail the checkout; prices always come from
// the live product so stale cart prices never reach an order.
func buildOrderItems(lines []cart.Line, fresh map[int]*catalog.Product) ([]OrderItem, float64, error) {
	items := make([]OrderItem, 0, len(lines))
	subtotal := 0.0

	for _, line := range lines {
		product, ok := fresh[line.Product.ID]
		if !ok {
			return nil, 0, fmt.Errorf("product %d is no longer available", line.Product.ID)
		}
		if product.Stock < line.Quantity {
			return nil, 0, fmt.Errorf("insufficient stock for %q: %d requested, %d available",
				product.Title, line.Quantity, product.Stock)
		}

		unitPrice := product.EffectivePrice()
		lineTotal := unitPrice * float64(line.Quantity)
		subtotal += lineTotal

		items = append(items, OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Thumbnail: product.Thumbnail,
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
	}

	return items, subtotal, nil
}

// GetUserOrders returns the user's order history, newest first
func (s *Service) GetUserOrders(userID uint, page, limit int) (*OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &OrderListResponse{
		Orders:     orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetOrder retrieves a single order belonging to the user
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *Service) GetOrderByNumber(userID uint, orderNumber string) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("order_number = ? AND user_id = ?", orderNumber, userID).First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// CancelOrder cancels an order if it has not shipped yet
func (s *Service) CancelOrder(userID, orderID uint) error {
	o, err := s.GetOrder(userID, orderID)
	if err != nil {
		return err
	}

	if !o.CanBeCancelled() {
		return fmt.Errorf("order %s can no longer be cancelled", o.OrderNumber)
	}

	if err := s.db.Model(o).Update("status", OrderStatusCancelled).Error; err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": o.OrderNumber,
		"user_id":      userID,
	}).Info("Order cancelled")

	return nil
}
