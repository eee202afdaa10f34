package api

import (
	"context"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderSummary is the part of a forwarded order the audit events carry
type orderSummary struct {
	Items       []struct{} `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	Currency    string     `json:"currency"`
}

func (h *Handler) publishForwarded(ctx context.Context, summary orderSummary, status int) {
	if h.events == nil {
		return
	}

	event := &models.OrderForwardedEvent{
		BaseEvent:      newBaseEvent(models.EventTypeOrderForwarded),
		UpstreamStatus: status,
		TotalAmount:    summary.TotalAmount,
		Currency:       summary.Currency,
		ItemCount:      len(summary.Items),
	}
	if err := h.events.PublishOrderForwarded(ctx, event); err != nil {
		h.logger.Error("Failed to publish OrderForwarded event", zap.Error(err))
	}
}

func (h *Handler) publishFailed(ctx context.Context, summary orderSummary, cause error) {
	if h.events == nil {
		return
	}

	event := &models.OrderForwardFailedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderForwardFailed),
		TotalAmount: summary.TotalAmount,
		ItemCount:   len(summary.Items),
		Reason:      cause.Error(),
	}
	if err := h.events.PublishOrderForwardFailed(ctx, event); err != nil {
		h.logger.Error("Failed to publish OrderForwardFailed event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
