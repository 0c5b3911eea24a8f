package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// PermissionService manages the permission matrices of non-administrator users.
type PermissionService interface {
	// GetGrants returns the target's grants totalized to one entry per
	// resource in domain.AllResources order, regardless of how sparse the
	// stored state is.
	GetGrants(ctx context.Context, targetID string) ([]domain.PermissionGrant, error)
	// ReplaceGrants persists a full-replacement payload for the target and
	// returns the canonical stored grants, which supersede any local edits.
	ReplaceGrants(ctx context.Context, actorID, targetID string, grants []domain.PermissionGrant) ([]domain.PermissionGrant, error)
}

// MatrixProvider resolves the effective permission matrix for an actor.
// Implementations may cache; a permission update must invalidate the
// actor's cached matrix before the next read.
type MatrixProvider interface {
	MatrixFor(ctx context.Context, actorID string) (domain.PermissionMatrix, error)
}
