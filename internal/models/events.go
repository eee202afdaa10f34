package models

import "time"

// Event types
const (
	EventTypeOrderForwarded     = "ORDER_FORWARDED"
	EventTypeOrderForwardFailed = "ORDER_FORWARD_FAILED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderForwardedEvent published when the order service answered the proxy
type OrderForwardedEvent struct {
	BaseEvent
	UpstreamStatus int     `json:"upstream_status"`
	TotalAmount    float64 `json:"total_amount"`
	Currency       string  `json:"currency"`
	ItemCount      int     `json:"item_count"`
}

// OrderForwardFailedEvent published when the order service could not be reached
type OrderForwardFailedEvent struct {
	BaseEvent
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
	Reason      string  `json:"reason"`
}
