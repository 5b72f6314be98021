// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// CartHandler handles session cart endpoints
type CartHandler struct {
	store   *cart.Store
	catalog *catalog.Client
	config  *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, catalogClient *catalog.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalogClient,
		config:  cfg,
	}
}

// AddToCartRequest represents an add-to-cart payload
type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

// UpdateCartItemRequest represents a quantity change payload
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	snapshot := h.store.Get(sessionID).Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    snapshot,
	})
}

// AddToCart handles POST /cart/items. Quantities beyond available stock
// are clamped rather than rejected; adding an out-of-stock product leaves
// the cart untouched.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	userCart := h.store.Get(sessionID)

	existing := 0
	for _, line := range userCart.Lines() {
		if line.Product.ID == product.ID {
			existing = line.Quantity
			break
		}
	}

	userCart.Add(*product)
	if req.Quantity > 1 {
		userCart.UpdateQuantity(product.ID, existing+req.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    userCart.Snapshot(),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userCart := h.store.Get(sessionID)
	userCart.UpdateQuantity(productID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    userCart.Snapshot(),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	userCart := h.store.Get(sessionID)
	userCart.Remove(productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    userCart.Snapshot(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	userCart := h.store.Get(sessionID)
	userCart.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    userCart.Snapshot(),
	})
}

// GetCartCount handles GET /cart/count, a light endpoint for the header badge
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	userCart := h.store.Get(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count": userCart.ItemCount(),
			"total": userCart.Total(),
		},
	})
}
