package worker

import (
	"context"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// OrderAuditWorker consumes order audit events and writes them to the log
type OrderAuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewOrderAuditWorker creates a new audit worker
func NewOrderAuditWorker(consumer *broker.Consumer) *OrderAuditWorker {
	w := &OrderAuditWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		logger:       util.GetLogger(),
	}

	w.eventHandler.OnOrderForwarded(w.handleOrderForwarded)
	w.eventHandler.OnOrderForwardFailed(w.handleOrderForwardFailed)

	return w
}

// Start starts the worker
func (w *OrderAuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting order audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderAuditWorker) Stop() error {
	w.logger.Info("Stopping order audit worker")
	return w.consumer.Close()
}

func (w *OrderAuditWorker) handleOrderForwarded(_ context.Context, event *models.OrderForwardedEvent) error {
	util.OrderEventsConsumedTotal.WithLabelValues(event.EventType).Inc()

	fields := []zap.Field{
		zap.String("event_id", event.EventID),
		zap.Int("upstream_status", event.UpstreamStatus),
		zap.Float64("total_amount", event.TotalAmount),
		zap.String("currency", event.Currency),
		zap.Int("item_count", event.ItemCount),
	}
	if event.UpstreamStatus >= 200 && event.UpstreamStatus < 300 {
		w.logger.Info("Order accepted by order service", fields...)
	} else {
		w.logger.Warn("Order rejected by order service", fields...)
	}
	return nil
}

func (w *OrderAuditWorker) handleOrderForwardFailed(_ context.Context, event *models.OrderForwardFailedEvent) error {
	util.OrderEventsConsumedTotal.WithLabelValues(event.EventType).Inc()

	w.logger.Error("Order never reached order service",
		zap.String("event_id", event.EventID),
		zap.Float64("total_amount", event.TotalAmount),
		zap.Int("item_count", event.ItemCount),
		zap.String("reason", event.Reason))
	return nil
}
