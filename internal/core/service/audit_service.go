package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// AuditRecorder persists audit events handed off by the dispatcher workers.
type AuditRecorder struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditRecorder(repo ports.AuditRepository, log zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

// Record writes one audit entry. Failures are logged and returned; the
// dispatcher does not retry, the originating request has already succeeded.
func (s *AuditRecorder) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		s.log.Error().Err(err).
			Str("actor_id", event.ActorID).
			Str("kind", string(event.Kind)).
			Msg("failed to record audit event")
		return err
	}
	return nil
}

// ListByActor returns the most recent trail entries for one actor.
func (s *AuditRecorder) ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditEvent, error) {
	return s.repo.ListByActor(ctx, actorID, limit)
}
