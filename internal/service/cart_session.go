package service

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/ui"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// CartStore persists the cart. Implementations never fail; see store.Store.
type CartStore interface {
	Load(ctx context.Context) models.Cart
	Save(ctx context.Context, cart models.Cart)
}

// CartRenderer redisplays the cart after a change
type CartRenderer interface {
	Render(cart models.Cart)
}

// CartSession applies cart operations with their side effects: every mutation
// reloads the stored cart, transforms it, saves it and redisplays it.
type CartSession struct {
	store    CartStore
	renderer CartRenderer
	notifier ui.Notifier
	logger   *zap.Logger
}

// NewCartSession creates a cart session
func NewCartSession(store CartStore, renderer CartRenderer, notifier ui.Notifier) *CartSession {
	return &CartSession{
		store:    store,
		renderer: renderer,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
}

// Cart returns the persisted cart
func (cs *CartSession) Cart(ctx context.Context) models.Cart {
	return cs.store.Load(ctx)
}

// Show redisplays the persisted cart without changing it
func (cs *CartSession) Show(ctx context.Context) models.Cart {
	cart := cs.store.Load(ctx)
	cs.renderer.Render(cart)
	return cart
}

// Add puts one unit of product into the cart
func (cs *CartSession) Add(ctx context.Context, product models.Product) (models.Cart, error) {
	cart, err := AddItem(cs.store.Load(ctx), product)
	if err != nil {
		cs.logger.Warn("Rejected product without identity", zap.String("name", product.Name))
		return cart, err
	}

	cs.commit(ctx, cart)
	cs.notifier.Notify(ui.LevelSuccess, addedMessage(product.Name, TotalItems(cart)))
	return cart, nil
}

// SetQuantity applies a quantity edit. raw is coerced with ParseQuantity.
func (cs *CartSession) SetQuantity(ctx context.Context, productID, raw string) models.Cart {
	current := cs.store.Load(ctx)
	if current.Find(productID) < 0 {
		cs.logger.Debug("Quantity change for item not in cart", zap.String("product_id", productID))
		cs.renderer.Render(current)
		return current
	}

	cart := SetQuantity(current, productID, ParseQuantity(raw))
	cs.commit(ctx, cart)
	return cart
}

// Remove drops a line from the cart
func (cs *CartSession) Remove(ctx context.Context, productID string) models.Cart {
	cart := RemoveItem(cs.store.Load(ctx), productID)
	cs.commit(ctx, cart)
	return cart
}

// Clear empties the cart unconditionally
func (cs *CartSession) Clear(ctx context.Context) models.Cart {
	cart := ClearCart()
	cs.commit(ctx, cart)
	return cart
}

// ConfirmClear empties the cart after the user confirms. It reports whether the cart was cleared.
func (cs *CartSession) ConfirmClear(ctx context.Context) bool {
	if cs.notifier.Confirm(ctx, "Are you sure you want to clear the cart?") != ui.Confirmed {
		return false
	}
	cs.Clear(ctx)
	return true
}

func (cs *CartSession) commit(ctx context.Context, cart models.Cart) {
	cs.store.Save(ctx, cart)
	cs.renderer.Render(cart)
}

func addedMessage(name string, total int) string {
	return fmt.Sprintf("%q has been added to your cart. Cart now contains %d item(s).", name, total)
}
