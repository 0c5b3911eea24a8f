package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// ClientInput carries customer fields for create and update.
type ClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// ClientService defines use-case operations for customer records.
type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
