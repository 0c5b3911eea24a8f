package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// AuditService processes audit events handed off by the dispatcher.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Enqueueing never
// blocks the request path; events for the same actor are processed in order.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditTrail reads back recorded entries.
type AuditTrail interface {
	// ListByActor returns the most recent entries for one actor, newest first.
	ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditEvent, error)
}
