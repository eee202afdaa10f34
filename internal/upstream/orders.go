package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// OrderClient submits order payloads to the order service
type OrderClient struct {
	*Client
}

// NewOrderClient creates an order service client
func NewOrderClient(url string, timeout time.Duration) *OrderClient {
	return &OrderClient{Client: NewClient("Order", url, timeout)}
}

// SubmitOrder posts the payload. Every call is a fresh attempt and carries its own
// Idempotency-Key so the order service can tell retries from double submissions.
func (oc *OrderClient) SubmitOrder(ctx context.Context, payload models.OrderPayload) (models.OrderConfirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	header := http.Header{
		"Content-Type":    {"application/json"},
		"Accept":          {"application/json"},
		"Idempotency-Key": {uuid.New().String()},
	}

	resp, err := oc.Do(ctx, http.MethodPost, body, header)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, oc.asError(resp)
	}

	if !json.Valid(resp.Body) {
		// the confirmation is not interpreted, keep whatever came back as a JSON string
		quoted, _ := json.Marshal(string(resp.Body))
		return models.OrderConfirmation(quoted), nil
	}
	return models.OrderConfirmation(resp.Body), nil
}
