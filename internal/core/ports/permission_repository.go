package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// PermissionRepository persists per-user grant records. Replace is a full
// replacement of the user's matrix: the stored set after the call is exactly
// the given grants, never a merge with previous state.
type PermissionRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.PermissionGrant, error)
	Replace(ctx context.Context, userID string, grants []domain.PermissionGrant) ([]domain.PermissionGrant, error)
}
