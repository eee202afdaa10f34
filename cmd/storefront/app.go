package main

import (
	"fmt"
	"os"

	"storefront/config"
	"storefront/internal/redisclient"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/ui"
	"storefront/internal/upstream"
	"storefront/internal/view"
)

// app holds everything one command invocation needs
type app struct {
	notifier *ui.Terminal
	renderer *view.Renderer
	session  *service.CartSession
	catalog  *service.Catalog
	checkout *service.Checkout
	closers  []func() error
}

func newApp(cfg *config.Config, assumeYes bool) (*app, error) {
	a := &app{
		notifier: ui.NewTerminal(os.Stdin, os.Stdout, assumeYes),
		renderer: view.NewRenderer(os.Stdout),
	}

	backend, err := a.openBackend(cfg)
	if err != nil {
		return nil, err
	}

	a.session = service.NewCartSession(store.New(backend, cfg.Cart.Key), a.renderer, a.notifier)
	a.catalog = service.NewCatalog(upstream.NewProductClient(cfg.Client.ProductAPIURL, cfg.Upstream.Timeout))
	a.checkout = service.NewCheckout(a.session, upstream.NewOrderClient(cfg.Client.OrderAPIURL, cfg.Upstream.Timeout), a.notifier)
	return a, nil
}

func (a *app) openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Cart.Backend {
	case "memory":
		return store.NewMemoryBackend(), nil
	case "redis":
		client, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cart.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis cart store: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return client, nil
	case "file", "":
		backend, err := store.NewFileBackend(cfg.Cart.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cart directory: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown CART_STORE %q (want file, redis or memory)", cfg.Cart.Backend)
	}
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		_ = closeFn()
	}
}
