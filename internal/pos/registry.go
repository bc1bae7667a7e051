// Package pos is the till surface: one in-memory cart per cashier and the
// endpoints that edit it and commit it into an order.
package pos

import (
	"sync"

	"github.com/mkadlec/salonpos/internal/cart"
)

// Registry holds the live carts keyed by cashier. Carts are created lazily
// on first access and survive until checkout clears them or the process
// restarts; they are never persisted.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
	stock cart.StockChecker
}

func NewRegistry(stock cart.StockChecker) *Registry {
	return &Registry{
		carts: map[string]*cart.Cart{},
		stock: stock,
	}
}

func (r *Registry) Get(cashierID string) *cart.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[cashierID]
	if !ok {
		c = cart.New(cashierID, r.stock)
		r.carts[cashierID] = c
	}
	return c
}

func (r *Registry) Drop(cashierID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cashierID)
}
