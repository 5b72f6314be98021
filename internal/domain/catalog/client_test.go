package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Catalog.BaseURL = server.URL
	cfg.Catalog.RequestTimeout = 5 * time.Second

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewClient(cfg, nil, logger)
}

func Test_Client_ListProducts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":1,"title":"iPhone 9","price":549,"stock":94,"discountPercentage":12.96,"category":"smartphones","rating":4.69}],"total":1}`))
	}))

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "iPhone 9", products[0].Title)
	assert.Equal(t, 549.0, products[0].Price)
	assert.Equal(t, 94, products[0].Stock)
	assert.InDelta(t, 549*(1-12.96/100), products[0].EffectivePrice(), 1e-9)
}

func Test_Client_Search(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "lap top", r.URL.Query().Get("q"))
		w.Write([]byte(`{"products":[{"id":7,"title":"Laptop"}],"total":1}`))
	}))

	products, err := client.Search(context.Background(), "lap top")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].ID)
}

func Test_Client_Suggest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"products":[{"id":1},{"id":2}],"total":2}`))
	}))

	products, err := client.Suggest(context.Background(), "ip", 5)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func Test_Client_Suggest_BlankQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blank query must not hit the API")
	}))

	products, err := client.Suggest(context.Background(), "  ", 5)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func Test_Client_ListByCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/smartphones", r.URL.Path)
		w.Write([]byte(`{"products":[{"id":1,"category":"smartphones"}],"total":1}`))
	}))

	products, err := client.ListByCategory(context.Background(), "Smartphones")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "smartphones", products[0].Category)
}

func Test_Client_ListCategories(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected []string
	}{
		{
			name:     "plain string array",
			payload:  `["beauty","fragrances","furniture"]`,
			expected: []string{"beauty", "fragrances", "furniture"},
		},
		{
			name:     "object array with slug",
			payload:  `[{"slug":"beauty","name":"Beauty","url":"https://example.com/beauty"},{"slug":"groceries","name":"Groceries"}]`,
			expected: []string{"beauty", "groceries"},
		},
		{
			name:     "object array falls back to name",
			payload:  `[{"name":"Beauty"}]`,
			expected: []string{"Beauty"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.payload))
			}))

			categories, err := client.ListCategories(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, categories)
		})
	}
}

func Test_Client_UpstreamErrorIsRecoverable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	products, err := client.ListProducts(context.Background())

	assert.Error(t, err)
	assert.Nil(t, products)
}

func Test_Client_MalformedBodyIsRecoverable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": not-json`))
	}))

	_, err := client.ListProducts(context.Background())

	assert.Error(t, err)
}

func Test_Client_GetProduct(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"title":"Mouse","price":9.99,"stock":3}`))
	}))

	product, err := client.GetProduct(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "Mouse", product.Title)
	assert.True(t, product.IsInStock())
}
