package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// ClientRepository defines persistence operations for customer records.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
