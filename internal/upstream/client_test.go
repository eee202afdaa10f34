package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Mouse","price":29.99,"category":"accessories"},{"_id":"abc","name":"TV","price":499}]`)
	}))
	defer srv.Close()

	products, err := NewProductClient(srv.URL, time.Second).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "abc", products[1].ID)
}

func TestListProductsNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[]}`)
	}))
	defer srv.Close()

	products, err := NewProductClient(srv.URL, time.Second).ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProductsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "catalog down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewProductClient(srv.URL, time.Second).ListProducts(context.Background())

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Equal(t, "Product service error: 503 Service Unavailable - catalog down", upErr.Error())
}

func TestSubmitOrder(t *testing.T) {
	var received models.OrderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"orderId":"o-1"}`)
	}))
	defer srv.Close()

	payload := models.OrderPayload{
		Items:       []models.OrderLine{{ProductID: "p1", Name: "Mouse", UnitPrice: 29.99, Quantity: 2, LineTotal: 59.98}},
		TotalAmount: 59.98,
		Currency:    models.CurrencyCAD,
		CreatedAt:   time.Now(),
	}

	conf, err := NewOrderClient(srv.URL, time.Second).SubmitOrder(context.Background(), payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"o-1"}`, string(conf))
	assert.Equal(t, 59.98, received.TotalAmount)
	require.Len(t, received.Items, 1)
	assert.Equal(t, "p1", received.Items[0].ProductID)
}

func TestSubmitOrderFailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "database unavailable\n")
	}))
	defer srv.Close()

	_, err := NewOrderClient(srv.URL, time.Second).SubmitOrder(context.Background(), models.OrderPayload{})

	require.Error(t, err)
	assert.Equal(t, "Order service error: 500 Internal Server Error - database unavailable", err.Error())
}

func TestSubmitOrderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOrderClient(url, time.Second).SubmitOrder(context.Background(), models.OrderPayload{})

	require.Error(t, err)
	var upErr *Error
	assert.False(t, errors.As(err, &upErr))
	assert.Contains(t, err.Error(), "failed to reach Order service")
}
