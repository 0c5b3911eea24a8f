package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// CommentInput carries comment fields for create and update.
type CommentInput struct {
	Content   string
	RelatedTo string
	RelatedID string
	AuthorID  string
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	Create(ctx context.Context, in CommentInput) (*domain.Comment, error)
	Get(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context) ([]*domain.Comment, error)
	Update(ctx context.Context, id string, in CommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
