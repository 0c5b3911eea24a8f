package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListByActor returns the most recent entries for one actor, newest first.
	ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditEvent, error)
}
