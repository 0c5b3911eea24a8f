package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// CreateUserInput carries the fields an administrator sets when adding an account.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsActive  bool
}

// UpdateUserInput carries the mutable account fields. Email is immutable once
// set; an empty Password leaves the stored hash untouched.
type UpdateUserInput struct {
	ID        string
	FirstName string
	LastName  string
	Password  string
	IsActive  bool
}

// UserService defines use-case operations for account management.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
