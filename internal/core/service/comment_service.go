package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// CommentService implements note management for orders, clients and products.
type CommentService struct {
	repo ports.CommentRepository
	log  zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, log zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, log: log}
}

func (s *CommentService) Create(ctx context.Context, in ports.CommentInput) (*domain.Comment, error) {
	relation := domain.CommentRelation(in.RelatedTo)
	if !relation.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCommentRelation, in.RelatedTo)
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		Content:   in.Content,
		RelatedTo: relation,
		RelatedID: in.RelatedID,
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, comment)
}

func (s *CommentService) Get(ctx context.Context, id string) (*domain.Comment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CommentService) List(ctx context.Context) ([]*domain.Comment, error) {
	return s.repo.List(ctx)
}

func (s *CommentService) Update(ctx context.Context, id string, in ports.CommentInput) (*domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	relation := domain.CommentRelation(in.RelatedTo)
	if !relation.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCommentRelation, in.RelatedTo)
	}

	comment.Content = in.Content
	comment.RelatedTo = relation
	comment.RelatedID = in.RelatedID
	comment.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
