package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/ui"
	"storefront/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestCheckout(answer ui.Outcome, orders *fakeOrders) (*Checkout, *CartSession, *fakeNotifier) {
	session, _, _, notifier := newTestSession(answer)
	checkout := NewCheckout(session, orders, notifier).WithClock(func() time.Time { return fixedNow })
	return checkout, session, notifier
}

func TestCheckoutEmptyCartSkipsNetwork(t *testing.T) {
	orders := &fakeOrders{}
	checkout, _, notifier := newTestCheckout(ui.Confirmed, orders)

	result, err := checkout.Run(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)
	assert.Zero(t, orders.callCount())
	assert.Empty(t, notifier.prompts)
	assert.Equal(t, notice{level: ui.LevelWarning, message: "Your cart is empty."}, notifier.last())
	assert.Equal(t, StateIdle, checkout.State())
}

func TestCheckoutDeclined(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}
	checkout, session, notifier := newTestCheckout(ui.Cancelled, orders)
	session.store.Save(ctx, sampleCart())

	result, err := checkout.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Zero(t, orders.callCount())
	assert.Len(t, notifier.prompts, 1)
	assert.Contains(t, notifier.prompts[0], "109.48 CAD")
	assert.Equal(t, sampleCart(), session.Cart(ctx))
	assert.Equal(t, StateIdle, checkout.State())
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{response: models.OrderConfirmation(`{"orderId":"o-1"}`)}
	checkout, session, notifier := newTestCheckout(ui.Confirmed, orders)
	session.store.Save(ctx, sampleCart())

	result, err := checkout.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.JSONEq(t, `{"orderId":"o-1"}`, string(result.Confirmation))
	require.Equal(t, 1, orders.callCount())
	assert.Equal(t, 109.48, orders.calls[0].TotalAmount)
	assert.Equal(t, fixedNow, orders.calls[0].CreatedAt)
	assert.Empty(t, session.Cart(ctx))
	assert.Equal(t, ui.LevelSuccess, notifier.last().level)
	assert.Equal(t, StateIdle, checkout.State())
}

func TestCheckoutUpstreamFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{err: &upstream.Error{
		Service:    "Order",
		StatusCode: 500,
		Status:     "Internal Server Error",
		Body:       "database unavailable",
	}}
	checkout, session, notifier := newTestCheckout(ui.Confirmed, orders)
	session.store.Save(ctx, sampleCart())

	result, err := checkout.Run(ctx)

	assert.Nil(t, result)
	var upErr *upstream.Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, 500, upErr.StatusCode)
	assert.Equal(t, sampleCart(), session.Cart(ctx))
	assert.Equal(t, ui.LevelError, notifier.last().level)
	assert.Contains(t, notifier.last().message, "database unavailable")
	assert.Equal(t, StateIdle, checkout.State())
}

func TestCheckoutNetworkFailureAllowsRetry(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{err: errors.New("connection refused")}
	checkout, session, _ := newTestCheckout(ui.Confirmed, orders)
	session.store.Save(ctx, sampleCart())

	_, err := checkout.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, orders.callCount())

	orders.err = nil
	result, err := checkout.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 2, orders.callCount())
}

func TestCheckoutRejectsConcurrentSubmission(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{block: make(chan struct{})}
	checkout, session, _ := newTestCheckout(ui.Confirmed, orders)
	session.store.Save(ctx, sampleCart())

	done := make(chan error, 1)
	go func() {
		_, err := checkout.Run(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return checkout.State() == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := checkout.Run(ctx)
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(orders.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, orders.callCount())
	assert.Equal(t, StateIdle, checkout.State())
}
