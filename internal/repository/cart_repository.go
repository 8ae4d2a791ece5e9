package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/sre-sandbox/shopping-api/internal/models"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// CartRepository defines the interface for per-user cart state. It is the
// only mutable shared resource in the system.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, product models.Product, quantity int) (*models.Cart, error)
	Checkout(ctx context.Context, userID string) (total float64, itemCount int, err error)
}

// InMemoryCartRepository implements CartRepository with in-memory storage.
// Carts are created lazily on first access and live for the process
// lifetime. Each cart carries its own lock, so mutations on the same user
// are serialized while different users do not contend; the outer lock only
// guards the map itself.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*cartEntry
}

type cartEntry struct {
	mu    sync.Mutex
	items []models.CartItem
	total float64
}

// NewInMemoryCartRepository creates a new empty cart store
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string]*cartEntry),
	}
}

func (r *InMemoryCartRepository) entry(userID string) *cartEntry {
	r.mu.RLock()
	e, ok := r.carts[userID]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.carts[userID]; ok {
		return e
	}
	e = &cartEntry{items: make([]models.CartItem, 0)}
	r.carts[userID] = e
	return e
}

// snapshot copies the entry into a Cart the caller may keep after the lock
// is released. Callers must hold e.mu.
func (e *cartEntry) snapshot() *models.Cart {
	items := make([]models.CartItem, len(e.items))
	copy(items, e.items)
	return &models.Cart{Items: items, Total: e.total}
}

// Get returns the user's cart, creating an empty one on first access
func (r *InMemoryCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// AddItem appends a cart item and increments the running total in a single
// critical section, preserving the total == sum(quantity*price) invariant.
func (r *InMemoryCartRepository) AddItem(ctx context.Context, userID string, product models.Product, quantity int) (*models.Cart, error) {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, models.CartItem{Product: product, Quantity: quantity})
	e.total += product.Price * float64(quantity)

	return e.snapshot(), nil
}

// Checkout captures the current total and item count and resets the cart to
// empty, all under the cart's lock so no mutation can interleave between the
// read and the reset. An empty cart fails with ErrEmptyCart and is left
// unchanged.
func (r *InMemoryCartRepository) Checkout(ctx context.Context, userID string) (float64, int, error) {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		return 0, 0, ErrEmptyCart
	}

	total := e.total
	count := len(e.items)
	e.items = make([]models.CartItem, 0)
	e.total = 0

	return total, count, nil
}
