package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
	"github.com/sre-sandbox/shopping-api/internal/repository"
)

func newCartService() *CartService {
	products := repository.NewInMemoryProductRepository()
	carts := repository.NewInMemoryCartRepository()
	return NewCartService(products, carts, chaos.NewRand(42))
}

func TestAddItem_ResolvesProductFromCatalog(t *testing.T) {
	svc := newCartService()

	cart, err := svc.AddItem(context.Background(), "alice", 2, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Wireless Mouse", cart.Items[0].Product.Name)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 3*29.99, cart.Total, 1e-9)
}

func TestAddItem_UnknownProductLeavesCartUnchanged(t *testing.T) {
	svc := newCartService()

	_, err := svc.AddItem(context.Background(), "alice", 999, 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	cart, err := svc.GetCart(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc := newCartService()

	for _, quantity := range []int{0, -1, -10} {
		_, err := svc.AddItem(context.Background(), "alice", 1, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestCheckout_ReturnsOrderMatchingCart(t *testing.T) {
	svc := newCartService()

	_, err := svc.AddItem(context.Background(), "bob", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "bob", 2, 2)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), "bob")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{5}$`), order.OrderID)
	assert.Equal(t, "confirmed", order.Status)
	assert.Equal(t, 2, order.ItemsCount)
	assert.InDelta(t, 1299.99+2*29.99, order.Total, 1e-9)

	cart, err := svc.GetCart(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCheckout_EmptyCartFails(t *testing.T) {
	svc := newCartService()

	_, err := svc.Checkout(context.Background(), "carol")
	assert.ErrorIs(t, err, repository.ErrEmptyCart)
}

func TestCheckout_MonotonicTotalOverManyAdds(t *testing.T) {
	svc := newCartService()

	const n = 20
	for i := 0; i < n; i++ {
		cart, err := svc.AddItem(context.Background(), "dave", 9, 1)
		require.NoError(t, err)
		assert.Len(t, cart.Items, i+1)
		assert.InDelta(t, float64(i+1)*34.99, cart.Total, 1e-6)
	}
}
