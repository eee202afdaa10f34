package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/ui"
	"storefront/internal/util"

	"go.uber.org/zap"
)

var (
	// ErrEmptyCart is returned when checkout starts with nothing in the cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInProgress is returned when checkout starts while another one is running
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// CheckoutState is a step of the order submission
type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateConfirming CheckoutState = "confirming"
	StateSubmitting CheckoutState = "submitting"
	StateSucceeded  CheckoutState = "succeeded"
	StateFailed     CheckoutState = "failed"
)

// CheckoutOutcome tells how a checkout that did not error ended
type CheckoutOutcome string

const (
	OutcomeSucceeded CheckoutOutcome = "succeeded"
	OutcomeDeclined  CheckoutOutcome = "declined"
)

// OrderSubmitter sends an order to the order service
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload models.OrderPayload) (models.OrderConfirmation, error)
}

// CheckoutResult is returned by a checkout that did not fail
type CheckoutResult struct {
	Outcome      CheckoutOutcome
	Payload      models.OrderPayload
	Confirmation models.OrderConfirmation
}

// Checkout drives idle → confirming → submitting → succeeded|failed → idle.
// Only one checkout runs at a time; failures never touch the cart and nothing is retried.
type Checkout struct {
	mu    sync.Mutex
	state CheckoutState

	session  *CartSession
	orders   OrderSubmitter
	notifier ui.Notifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewCheckout creates a checkout in the idle state
func NewCheckout(session *CartSession, orders OrderSubmitter, notifier ui.Notifier) *Checkout {
	return &Checkout{
		state:    StateIdle,
		session:  session,
		orders:   orders,
		notifier: notifier,
		now:      time.Now,
		logger:   util.GetLogger(),
	}
}

// WithClock replaces the clock used to stamp createdAt
func (c *Checkout) WithClock(now func() time.Time) *Checkout {
	c.now = now
	return c
}

// State returns the current state
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run performs one user-initiated checkout
func (c *Checkout) Run(ctx context.Context) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "Checkout.Run")
	defer span.End()

	if !c.begin() {
		c.logger.Warn("Checkout requested while another is in flight", zap.String("state", string(c.State())))
		return nil, ErrCheckoutInProgress
	}
	defer c.transition(StateIdle)

	cart := c.session.Cart(ctx)
	if len(cart) == 0 {
		c.notifier.Notify(ui.LevelWarning, "Your cart is empty.")
		return nil, ErrEmptyCart
	}

	payload := BuildOrderPayload(cart, c.now())
	if c.notifier.Confirm(ctx, confirmationMessage(payload)) != ui.Confirmed {
		c.logger.Info("Checkout declined")
		return &CheckoutResult{Outcome: OutcomeDeclined, Payload: payload}, nil
	}

	c.transition(StateSubmitting)
	c.logger.Info("Sending order to order-service",
		zap.Int("items", len(payload.Items)),
		zap.Float64("total_amount", payload.TotalAmount))

	confirmation, err := c.orders.SubmitOrder(ctx, payload)
	if err != nil {
		c.transition(StateFailed)
		span.RecordError(err)
		c.logger.Error("Error sending order", zap.Error(err))
		c.notifier.Notify(ui.LevelError, "Failed to create order.\n\nError:\n"+err.Error())
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	c.transition(StateSucceeded)
	c.session.Clear(ctx)
	c.notifier.Notify(ui.LevelSuccess, "Order created successfully!")

	return &CheckoutResult{
		Outcome:      OutcomeSucceeded,
		Payload:      payload,
		Confirmation: confirmation,
	}, nil
}

// begin moves idle → confirming, or reports false when a checkout is already running
func (c *Checkout) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return false
	}
	c.state = StateConfirming
	util.CheckoutTransitionsTotal.WithLabelValues(string(StateConfirming)).Inc()
	return true
}

func (c *Checkout) transition(next CheckoutState) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	util.CheckoutTransitionsTotal.WithLabelValues(string(next)).Inc()
	c.logger.Debug("Checkout transition", zap.String("from", string(prev)), zap.String("to", string(next)))
}

func confirmationMessage(payload models.OrderPayload) string {
	var b strings.Builder
	b.WriteString("You are about to send this order to the order-service:\n\n")
	for _, line := range payload.Items {
		fmt.Fprintf(&b, "  %d x %s = %.2f\n", line.Quantity, line.Name, line.LineTotal)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f %s\n\nContinue?", payload.TotalAmount, payload.Currency)
	return b.String()
}
