// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/browse"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/suggest"
)

// CatalogHandler handles product browsing endpoints
type CatalogHandler struct {
	client      *catalog.Client
	suggestions *suggest.Service
	config      *config.Config
	logger      *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(client *catalog.Client, suggestions *suggest.Service, cfg *config.Config, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		client:      client,
		suggestions: suggestions,
		config:      cfg,
		logger:      logger,
	}
}

// ListProducts handles GET /products.
// The URL query drives everything: q, category, minPrice, maxPrice, sort.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	state := browse.ParseFilterState(c.Request.URL.Query())

	categories, err := h.client.ListCategories(ctx)
	if err != nil {
		// Filtering can proceed without the category list; the unknown
		// category guard just disables itself.
		h.logger.WithError(err).Warn("Failed to load category list")
		categories = nil
	}

	var products []catalog.Product
	switch {
	case state.HasQuery():
		products, err = h.client.Search(ctx, state.Query)
	case state.Category != browse.CategoryAll && containsString(categories, state.Category):
		products, err = h.client.ListByCategory(ctx, state.Category)
	default:
		products, err = h.client.ListProducts(ctx)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Catalog is temporarily unavailable",
		})
		return
	}

	minPrice, maxPrice := browse.PriceBounds(products)
	result := browse.Apply(products, state, categories)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": result,
			"total":    len(result),
			"filters": gin.H{
				"query":     state.Query,
				"category":  state.Category,
				"min_price": state.MinPrice,
				"max_price": state.MaxPrice,
				"sort":      state.Sort,
			},
			"price_bounds": gin.H{
				"min": minPrice,
				"max": maxPrice,
			},
			"categories": categories,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.client.GetProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// ListCategories handles GET /products/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.client.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Catalog is temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// Suggest handles GET /products/suggest. Responses for queries that were
// superseded by newer keystrokes come back as 204 so clients drop them.
func (h *CatalogHandler) Suggest(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	query := c.Query("q")

	products, err := h.suggestions.Suggest(c.Request.Context(), sessionID, query)
	if err != nil {
		if errors.Is(err, suggest.ErrSuperseded) {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Suggestions are temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Suggestions retrieved successfully",
		"data": gin.H{
			"query":       query,
			"suggestions": products,
		},
	})
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
