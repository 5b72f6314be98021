// internal/domain/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Client fetches products from the external catalog API. All failures are
// recoverable errors to the caller; the client never panics on bad input
// or bad upstream data.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	logger     *logrus.Logger
}

// NewClient creates a new catalog API client
func NewClient(cfg *config.Config, cache *Cache, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Catalog.RequestTimeout,
		},
		cache:  cache,
		logger: logger,
	}
}

// listEnvelope is the wrapper the API puts around product collections
type listEnvelope struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ListProducts retrieves the full product list
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	return c.fetchProductList(ctx, "/products?limit=0")
}

// GetProduct retrieves a single product by ID
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	path := fmt.Sprintf("/products/%d", id)

	var product Product
	if c.cache.Get(ctx, path, &product) {
		return &product, nil
	}

	if err := c.getJSON(ctx, path, &product); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, path, &product)
	return &product, nil
}

// ListByCategory retrieves products belonging to a single category
func (c *Client) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	path := "/products/category/" + url.PathEscape(strings.ToLower(category))
	return c.fetchProductList(ctx, path)
}

// Search retrieves products matching a free-text query
func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	path := "/products/search?q=" + url.QueryEscape(query)
	return c.fetchProductList(ctx, path)
}

// Suggest retrieves a short list of products for search-as-you-type
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Product, error) {
	if strings.TrimSpace(query) == "" {
		return []Product{}, nil
	}

	path := "/products/search?q=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)
	return c.fetchProductList(ctx, path)
}

// ListCategories retrieves the category names known to the catalog.
// The API has served both a plain string array and an object array over
// time, so both shapes are accepted.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	const path = "/products/categories"

	var categories []string
	if c.cache.Get(ctx, path, &categories) {
		return categories, nil
	}

	var raw []json.RawMessage
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}

	categories = make([]string, 0, len(raw))
	for _, entry := range raw {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			categories = append(categories, name)
			continue
		}

		var obj struct {
			Slug string `json:"slug"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil {
			if obj.Slug != "" {
				categories = append(categories, obj.Slug)
			} else if obj.Name != "" {
				categories = append(categories, obj.Name)
			}
		}
	}

	c.cache.Set(ctx, path, categories)
	return categories, nil
}

// fetchProductList fetches and unwraps a product collection response
func (c *Client) fetchProductList(ctx context.Context, path string) ([]Product, error) {
	var envelope listEnvelope
	if c.cache.Get(ctx, path, &envelope) {
		return envelope.Products, nil
	}

	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}

	if envelope.Products == nil {
		envelope.Products = []Product{}
	}

	c.cache.Set(ctx, path, &envelope)
	return envelope.Products, nil
}

// getJSON performs a GET request and decodes the JSON response into dest
func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Catalog request failed")
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Catalog returned non-OK status")
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
