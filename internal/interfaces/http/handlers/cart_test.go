package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func newCartTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Fake catalog backend: product 1 has stock 3, product 2 is sold out
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			w.Write([]byte(`{"id":1,"title":"Keyboard","price":100,"discountPercentage":20,"stock":3}`))
		case "/products/2":
			w.Write([]byte(`{"id":2,"title":"Sold Out","price":50,"stock":0}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{}
	cfg.Catalog.BaseURL = backend.URL
	cfg.Catalog.RequestTimeout = 5 * time.Second
	cfg.Cart.SessionTTL = time.Hour
	cfg.Cart.SweepInterval = time.Minute

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := cart.NewStore(cfg, logger)
	client := catalog.NewClient(cfg, nil, logger)
	handler := NewCartHandler(store, client, cfg)

	router := gin.New()
	router.GET("/cart", handler.GetCart)
	router.POST("/cart/items", handler.AddToCart)
	router.PUT("/cart/items/:id", handler.UpdateCartItem)
	router.DELETE("/cart/items/:id", handler.RemoveFromCart)
	router.DELETE("/cart", handler.ClearCart)
	return router
}

type cartEnvelope struct {
	Data cart.Snapshot `json:"data"`
}

func doCartRequest(t *testing.T, router *gin.Engine, cookies []*http.Cookie, method, path, body string) (*httptest.ResponseRecorder, cartEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope cartEnvelope
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func Test_CartHandler_AddAndRetrieve(t *testing.T) {
	router := newCartTestRouter(t)

	// when a product is added
	w, snapshot := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	// then the cart holds one unit at the discounted price
	require.Len(t, snapshot.Data.Items, 1)
	assert.Equal(t, 1, snapshot.Data.Items[0].Quantity)
	assert.InDelta(t, 80.0, snapshot.Data.Totals.Total, 1e-9)

	// and the session cookie carries the cart across requests
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2, snapshot2 := doCartRequest(t, router, cookies, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, snapshot2.Data.Items, 1)
}

func Test_CartHandler_QuantityClampedToStock(t *testing.T) {
	router := newCartTestRouter(t)

	// requesting 10 units of a product with stock 3
	w, snapshot := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1,"quantity":10}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, snapshot.Data.Items, 1)
	assert.Equal(t, 3, snapshot.Data.Items[0].Quantity)
}

func Test_CartHandler_OutOfStockIsSilentNoOp(t *testing.T) {
	router := newCartTestRouter(t)

	w, snapshot := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, snapshot.Data.Items)
}

func Test_CartHandler_UpdateToZeroRemovesLine(t *testing.T) {
	router := newCartTestRouter(t)

	w, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1}`)
	cookies := w.Result().Cookies()

	w2, snapshot := doCartRequest(t, router, cookies, http.MethodPut, "/cart/items/1", `{"quantity":0}`)

	require.Equal(t, http.StatusOK, w2.Code)
	assert.Empty(t, snapshot.Data.Items)
}

func Test_CartHandler_RemoveUnknownProductKeepsCart(t *testing.T) {
	router := newCartTestRouter(t)

	w, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1}`)
	cookies := w.Result().Cookies()

	w2, snapshot := doCartRequest(t, router, cookies, http.MethodDelete, "/cart/items/999", "")

	require.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, snapshot.Data.Items, 1)
}

func Test_CartHandler_UnknownProductIs404(t *testing.T) {
	router := newCartTestRouter(t)

	w, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":404}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_CartHandler_SessionsAreIsolated(t *testing.T) {
	router := newCartTestRouter(t)

	wA, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1}`)
	cookiesA := wA.Result().Cookies()

	// a second visitor with no cookie gets an empty cart
	_, snapshotB := doCartRequest(t, router, nil, http.MethodGet, "/cart", "")
	assert.Empty(t, snapshotB.Data.Items)

	// the first visitor still has their item
	_, snapshotA := doCartRequest(t, router, cookiesA, http.MethodGet, "/cart", "")
	assert.Len(t, snapshotA.Data.Items, 1)
}

func Test_CartHandler_ClearEmptiesCart(t *testing.T) {
	router := newCartTestRouter(t)

	w, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1,"quantity":2}`)
	cookies := w.Result().Cookies()

	w2, snapshot := doCartRequest(t, router, cookies, http.MethodDelete, "/cart", "")

	require.Equal(t, http.StatusOK, w2.Code)
	assert.Empty(t, snapshot.Data.Items)
	assert.Zero(t, snapshot.Data.Totals.TotalQuantity)
}

func Test_CartHandler_AddTwiceIncrementsOneLine(t *testing.T) {
	router := newCartTestRouter(t)

	w, _ := doCartRequest(t, router, nil, http.MethodPost, "/cart/items", `{"product_id":1}`)
	cookies := w.Result().Cookies()

	_, snapshot := doCartRequest(t, router, cookies, http.MethodPost, "/cart/items", `{"product_id":1}`)

	require.Len(t, snapshot.Data.Items, 1)
	assert.Equal(t, 2, snapshot.Data.Items[0].Quantity)
	assert.Equal(t, 1, snapshot.Data.Items[0].Product.ID)
}
