package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher publishes order audit events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderForwarded publishes OrderForwarded event
func (ep *EventPublisher) PublishOrderForwarded(ctx context.Context, event *models.OrderForwardedEvent) error {
	return ep.producer.PublishEvent(ctx, "order-"+event.EventID, event)
}

// PublishOrderForwardFailed publishes OrderForwardFailed event
func (ep *EventPublisher) PublishOrderForwardFailed(ctx context.Context, event *models.OrderForwardFailedEvent) error {
	return ep.producer.PublishEvent(ctx, "order-"+event.EventID, event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onOrderForwarded     func(context.Context, *models.OrderForwardedEvent) error
	onOrderForwardFailed func(context.Context, *models.OrderForwardFailedEvent) error
	logger               *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnOrderForwarded registers a handler for OrderForwarded events
func (eh *EventHandler) OnOrderForwarded(handler func(context.Context, *models.OrderForwardedEvent) error) {
	eh.onOrderForwarded = handler
}

// OnOrderForwardFailed registers a handler for OrderForwardFailed events
func (eh *EventHandler) OnOrderForwardFailed(handler func(context.Context, *models.OrderForwardFailedEvent) error) {
	eh.onOrderForwardFailed = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderForwarded:
		if eh.onOrderForwarded != nil {
			var event models.OrderForwardedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderForwarded event: %w", err)
			}
			return eh.onOrderForwarded(ctx, &event)
		}

	case models.EventTypeOrderForwardFailed:
		if eh.onOrderForwardFailed != nil {
			var event models.OrderForwardFailedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderForwardFailed event: %w", err)
			}
			return eh.onOrderForwardFailed(ctx, &event)
		}

	default:
		eh.logger.Warn("Unhandled event type", zap.String("event_type", baseEvent.EventType))
	}

	return nil
}
