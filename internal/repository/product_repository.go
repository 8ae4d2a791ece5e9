package repository

import (
	"context"
	"errors"

	"github.com/sre-sandbox/shopping-api/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// InMemoryProductRepository implements ProductRepository with a fixed
// in-memory catalog. The catalog is loaded once at startup and never
// mutated, so reads need no locking. A slice rather than a map keeps the
// list order stable.
type InMemoryProductRepository struct {
	products []models.Product
}

// NewInMemoryProductRepository creates the catalog with the demo seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	products := []models.Product{
		{ID: 1, Name: "Laptop Pro 15", Price: 1299.99, Category: "electronics"},
		{ID: 2, Name: "Wireless Mouse", Price: 29.99, Category: "electronics"},
		{ID: 3, Name: "USB-C Hub", Price: 49.99, Category: "electronics"},
		{ID: 4, Name: "Mechanical Keyboard", Price: 149.99, Category: "electronics"},
		{ID: 5, Name: "4K Monitor", Price: 399.99, Category: "electronics"},
		{ID: 6, Name: "Headphones Pro", Price: 199.99, Category: "audio"},
		{ID: 7, Name: "Bluetooth Speaker", Price: 79.99, Category: "audio"},
		{ID: 8, Name: "Webcam HD", Price: 89.99, Category: "electronics"},
		{ID: 9, Name: "Desk Lamp", Price: 34.99, Category: "home"},
		{ID: 10, Name: "Ergonomic Chair", Price: 299.99, Category: "furniture"},
	}

	return &InMemoryProductRepository{
		products: products,
	}
}

// List returns products in catalog order, optionally filtered by an exact,
// case-sensitive category match. An empty category returns the full list.
func (r *InMemoryProductRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// GetByID returns a product by its ID. The catalog is tiny, so a linear
// scan is fine.
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	for _, product := range r.products {
		if product.ID == id {
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Categories returns the distinct categories in first-seen catalog order
func (r *InMemoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool, len(r.products))
	categories := make([]string, 0, len(r.products))
	for _, product := range r.products {
		if seen[product.Category] {
			continue
		}
		seen[product.Category] = true
		categories = append(categories, product.Category)
	}
	return categories, nil
}
