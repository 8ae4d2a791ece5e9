package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/models"
	"github.com/sre-sandbox/shopping-api/internal/repository"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// CartService handles cart and checkout business logic
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	rng      chaos.Rand
}

// NewCartService creates a new cart service
func NewCartService(products repository.ProductRepository, carts repository.CartRepository, rng chaos.Rand) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		rng:      rng,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem resolves the product against the catalog and appends it to the
// user's cart. An unknown product fails with ErrProductNotFound and leaves
// the cart unchanged.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.carts.AddItem(ctx, userID, *product, quantity)
}

// Checkout captures the cart's total and item count, resets it to empty and
// returns the order receipt. A cart with no items fails with ErrEmptyCart
// and performs no mutation.
func (s *CartService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	total, count, err := s.carts.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Order{
		OrderID:    s.newOrderID(),
		Status:     "confirmed",
		Total:      total,
		ItemsCount: count,
	}, nil
}

// newOrderID generates an ORD-xxxxx receipt id with a 5-digit random
// suffix. Collisions are tolerable; orders are never stored or looked up.
func (s *CartService) newOrderID() string {
	return fmt.Sprintf("ORD-%d", 10000+s.rng.IntN(90000))
}
