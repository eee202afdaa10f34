package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/models"
)

// ProductClient lists products from the product service
type ProductClient struct {
	*Client
}

// NewProductClient creates a product service client
func NewProductClient(url string, timeout time.Duration) *ProductClient {
	return &ProductClient{Client: NewClient("Product", url, timeout)}
}

// ListProducts returns every product the service sends. A JSON body that is
// not an array yields an empty list.
func (pc *ProductClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	resp, err := pc.Do(ctx, http.MethodGet, nil, http.Header{"Accept": {"application/json"}})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, pc.asError(resp)
	}

	raw := bytes.TrimSpace(resp.Body)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("failed to decode products: invalid JSON body")
	}
	if len(raw) == 0 || raw[0] != '[' {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
