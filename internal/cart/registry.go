package cart

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	cart     *Cart
	lastUsed time.Time
}

// Registry keeps one cart per signed-in user. Carts nobody touched for the
// idle window are evicted by Sweep, so sessions that end by token expiry
// instead of logout do not pin their carts forever.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*entry), now: time.Now}
}

// Get returns the user's cart, creating an empty one on first use.
func (r *Registry) Get(userID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.carts[userID]
	if !ok {
		e = &entry{cart: New()}
		r.carts[userID] = e
	}
	e.lastUsed = r.now()
	return e.cart
}

// Drop discards the user's cart and every reservation in it.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep drops carts not fetched within idle and reports how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	dropped := 0
	for userID, e := range r.carts {
		if e.lastUsed.Before(cutoff) {
			delete(r.carts, userID)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx ends. onSweep, when not
// nil, receives the count of each sweep that dropped something.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration, onSweep func(dropped int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
