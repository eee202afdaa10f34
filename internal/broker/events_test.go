package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestHandleMessageRoutesByType(t *testing.T) {
	var forwarded *models.OrderForwardedEvent
	var failed *models.OrderForwardFailedEvent

	eh := NewEventHandler()
	eh.OnOrderForwarded(func(_ context.Context, e *models.OrderForwardedEvent) error {
		forwarded = e
		return nil
	})
	eh.OnOrderForwardFailed(func(_ context.Context, e *models.OrderForwardFailedEvent) error {
		failed = e
		return nil
	})

	ctx := context.Background()
	require.NoError(t, eh.HandleMessage(ctx, message(t, models.OrderForwardedEvent{
		BaseEvent:      models.BaseEvent{EventID: "e1", EventType: models.EventTypeOrderForwarded, Timestamp: time.Now()},
		UpstreamStatus: 201,
		TotalAmount:    109.48,
		ItemCount:      2,
	})))
	require.NoError(t, eh.HandleMessage(ctx, message(t, models.OrderForwardFailedEvent{
		BaseEvent: models.BaseEvent{EventID: "e2", EventType: models.EventTypeOrderForwardFailed},
		Reason:    "connection refused",
	})))

	require.NotNil(t, forwarded)
	assert.Equal(t, 201, forwarded.UpstreamStatus)
	assert.Equal(t, 2, forwarded.ItemCount)
	require.NotNil(t, failed)
	assert.Equal(t, "connection refused", failed.Reason)
}

func TestHandleMessageIgnoresUnknownType(t *testing.T) {
	eh := NewEventHandler()

	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"event_type":"SOMETHING_ELSE"}`)})
	assert.NoError(t, err)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	eh := NewEventHandler()

	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
