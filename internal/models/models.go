package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrMissingProductID is returned when a product arrives without an identity field
var ErrMissingProductID = errors.New("product has no id")

// Product represents a catalog entry returned by the product service
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id" as the identity, as a string or a number.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		AltID    json.RawMessage `json:"_id"`
		Name     string          `json:"name"`
		Price    float64         `json:"price"`
		Category string          `json:"category"`
		ImageURL string          `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeIdentity(raw.ID)
	if err != nil {
		return err
	}
	if id == "" {
		if id, err = decodeIdentity(raw.AltID); err != nil {
			return err
		}
	}

	*p = Product{
		ID:       id,
		Name:     raw.Name,
		Price:    raw.Price,
		Category: raw.Category,
		ImageURL: raw.ImageURL,
	}
	return nil
}

// Identity returns the canonical product key used by the cart
func (p Product) Identity() (string, error) {
	if p.ID == "" {
		return "", ErrMissingProductID
	}
	return p.ID, nil
}

func decodeIdentity(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// CartItem is one line of the cart, a snapshot of the product taken at add time
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered collection of items, unique by ProductID
type Cart []CartItem

// Find returns the index of the item with the given product id, or -1
func (c Cart) Find(productID string) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Currency used for every order
const CurrencyCAD = "CAD"

// OrderLine is a cart item as sent to the order service
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// OrderPayload is the request body of POST /api/orders
type OrderPayload struct {
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Currency    string      `json:"currency"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// MarshalJSON renders createdAt as an ISO-8601 UTC timestamp with millisecond precision.
func (p OrderPayload) MarshalJSON() ([]byte, error) {
	type alias OrderPayload
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"createdAt"`
	}{
		alias:     alias(p),
		CreatedAt: p.CreatedAt.UTC().Format(ISOTimestamp),
	})
}

// ISOTimestamp is the layout of OrderPayload.CreatedAt on the wire
const ISOTimestamp = "2006-01-02T15:04:05.000Z07:00"

// OrderConfirmation is whatever the order service answers on success
type OrderConfirmation = json.RawMessage
