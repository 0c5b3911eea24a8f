package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// ProductInput carries catalog fields for create and update.
type ProductInput struct {
	Name        string
	Description string
	SKU         string
	Price       float64
	Stock       int
}

// ProductService defines use-case operations for the catalog. It doubles as
// the catalog collaborator consulted when seeding order lines.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
