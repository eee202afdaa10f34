package service

import (
	"context"
	"sync"

	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/ui"
)

type notice struct {
	level   ui.Level
	message string
}

type fakeNotifier struct {
	mu      sync.Mutex
	answer  ui.Outcome
	prompts []string
	notices []notice
}

func (f *fakeNotifier) Confirm(_ context.Context, message string) ui.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, message)
	return f.answer
}

func (f *fakeNotifier) Notify(level ui.Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{level: level, message: message})
}

func (f *fakeNotifier) last() notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notices) == 0 {
		return notice{}
	}
	return f.notices[len(f.notices)-1]
}

type recordingRenderer struct {
	mu      sync.Mutex
	renders []models.Cart
}

func (r *recordingRenderer) Render(cart models.Cart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, cart)
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

type fakeOrders struct {
	mu       sync.Mutex
	calls    []models.OrderPayload
	err      error
	response models.OrderConfirmation
	block    chan struct{}
}

func (f *fakeOrders) SubmitOrder(_ context.Context, payload models.OrderPayload) (models.OrderConfirmation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, payload)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	return f.response, f.err
}

func (f *fakeOrders) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeProducts struct {
	products []models.Product
	err      error
}

func (f *fakeProducts) ListProducts(context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func newTestSession(answer ui.Outcome) (*CartSession, *store.Store, *recordingRenderer, *fakeNotifier) {
	st := store.New(store.NewMemoryBackend(), "test-cart")
	renderer := &recordingRenderer{}
	notifier := &fakeNotifier{answer: answer}
	return NewCartSession(st, renderer, notifier), st, renderer, notifier
}
