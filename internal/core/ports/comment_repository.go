package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context) ([]*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
