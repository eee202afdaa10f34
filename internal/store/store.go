package store

import (
	"context"
	"encoding/json"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// Backend is a persistent key-value store holding serialized carts
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store reads and writes the cart under a fixed key.
// Neither Load nor Save ever fails: problems are logged and the caller carries on.
type Store struct {
	backend Backend
	key     string
	logger  *zap.Logger
}

// New creates a cart store on top of backend
func New(backend Backend, key string) *Store {
	return &Store{
		backend: backend,
		key:     key,
		logger:  util.GetLogger(),
	}
}

// Key returns the key the cart is stored under
func (s *Store) Key() string {
	return s.key
}

// Load returns the persisted cart, or an empty cart when nothing usable is stored
func (s *Store) Load(ctx context.Context) models.Cart {
	ctx, span := util.StartSpan(ctx, "Store.Load")
	defer span.End()

	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		util.CartStorageErrorsTotal.WithLabelValues("read").Inc()
		s.logger.Error("Error reading cart from storage", zap.String("key", s.key), zap.Error(err))
		return models.Cart{}
	}
	if !found || raw == "" {
		return models.Cart{}
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		util.CartStorageErrorsTotal.WithLabelValues("corrupt").Inc()
		s.logger.Warn("Discarding corrupt cart", zap.String("key", s.key), zap.Error(err))
		return models.Cart{}
	}

	return sanitize(items)
}

// Save persists the cart
func (s *Store) Save(ctx context.Context, cart models.Cart) {
	ctx, span := util.StartSpan(ctx, "Store.Save")
	defer span.End()

	if cart == nil {
		cart = models.Cart{}
	}

	data, err := json.Marshal(cart)
	if err != nil {
		util.CartStorageErrorsTotal.WithLabelValues("encode").Inc()
		s.logger.Error("Error encoding cart", zap.Error(err))
		return
	}

	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		util.CartStorageErrorsTotal.WithLabelValues("write").Inc()
		s.logger.Error("Error saving cart to storage", zap.String("key", s.key), zap.Error(err))
	}
}

// sanitize restores the cart invariants on data written by someone else:
// items need a product id, quantities start at 1 and ids are unique.
func sanitize(items []models.CartItem) models.Cart {
	cart := make(models.Cart, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if i := cart.Find(item.ProductID); i >= 0 {
			cart[i].Quantity += item.Quantity
			continue
		}
		cart = append(cart, item)
	}
	return cart
}
