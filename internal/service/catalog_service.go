package service

import (
	"context"

	"github.com/sre-sandbox/shopping-api/internal/models"
	"github.com/sre-sandbox/shopping-api/internal/repository"
)

// CatalogService handles business logic for the product catalog
type CatalogService struct {
	repo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts returns products, optionally filtered by category
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.repo.List(ctx, category)
}

// GetProduct returns a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct product categories
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
