package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// MatrixCache abstracts the per-actor matrix cache (Redis).
type MatrixCache interface {
	Get(ctx context.Context, actorID string) (domain.PermissionMatrix, bool, error)
	Set(ctx context.Context, actorID string, matrix domain.PermissionMatrix) error
	Invalidate(ctx context.Context, actorID string) error
}

// PermissionService manages permission matrices for non-administrator users.
// It is also the MatrixProvider the authorization middleware consults: reads
// go through the cache, and every persisted change invalidates the target's
// cached matrix before returning.
type PermissionService struct {
	users ports.UserRepository
	repo  ports.PermissionRepository
	cache MatrixCache
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewPermissionService(users ports.UserRepository, repo ports.PermissionRepository, cache MatrixCache, audit ports.AuditSink, log zerolog.Logger) *PermissionService {
	return &PermissionService{users: users, repo: repo, cache: cache, audit: audit, log: log}
}

// GetGrants returns the target's grants totalized to one entry per resource.
// Sparse stored state (a user who never had grants saved) comes back as
// explicit all-false rows, never as a shorter list.
func (s *PermissionService) GetGrants(ctx context.Context, targetID string) ([]domain.PermissionGrant, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.FindByUserID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	editor, err := domain.NewMatrixEditor(target.Actor(), stored)
	if err != nil {
		return nil, err
	}
	return editor.Payload(), nil
}

// ReplaceGrants persists a full-replacement payload for the target. The
// submitted grants are normalized through a MatrixEditor so the stored set is
// always total and carries no unknown resources. Returns the canonical stored
// grants; callers discard their local edits in favor of them.
func (s *PermissionService) ReplaceGrants(ctx context.Context, actorID, targetID string, grants []domain.PermissionGrant) ([]domain.PermissionGrant, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	editor, err := domain.NewMatrixEditor(target.Actor(), grants)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Replace(ctx, targetID, editor.Payload())
	if err != nil {
		return nil, err
	}

	// The next authorization check must see the new matrix.
	if err := s.cache.Invalidate(ctx, targetID); err != nil {
		s.log.Warn().Err(err).Str("user_id", targetID).Msg("failed to invalidate matrix cache")
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorID:   actorID,
		Kind:      domain.AuditPermissionUpdate,
		TargetID:  targetID,
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().Str("user_id", targetID).Str("updated_by", actorID).Msg("permissions replaced")
	return stored, nil
}

// MatrixFor resolves the effective matrix for an actor, preferring the cache.
// A cache read failure falls back to the repository rather than denying.
func (s *PermissionService) MatrixFor(ctx context.Context, actorID string) (domain.PermissionMatrix, error) {
	matrix, ok, err := s.cache.Get(ctx, actorID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", actorID).Msg("matrix cache read failed")
	} else if ok {
		return matrix, nil
	}

	stored, err := s.repo.FindByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	matrix = domain.BuildMatrix(stored)

	if err := s.cache.Set(ctx, actorID, matrix); err != nil {
		s.log.Warn().Err(err).Str("user_id", actorID).Msg("matrix cache write failed")
	}
	return matrix, nil
}
