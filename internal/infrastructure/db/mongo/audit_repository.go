package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/console-api/internal/core/domain"
)

const auditCollection = "audit_events"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ActorID   string `bson:"actor_id"`
	Kind      string `bson:"kind"`
	Resource  string `bson:"resource,omitempty"`
	Action    string `bson:"action,omitempty"`
	TargetID  string `bson:"target_id,omitempty"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		ActorID:   event.ActorID,
		Kind:      string(event.Kind),
		Resource:  string(event.Resource),
		Action:    string(event.Action),
		TargetID:  event.TargetID,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"actor_id": actorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.AuditEvent
	for cur.Next(ctx) {
		var me mongoAuditEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, &domain.AuditEvent{
			ActorID:   me.ActorID,
			Kind:      domain.AuditKind(me.Kind),
			Resource:  domain.Resource(me.Resource),
			Action:    domain.Action(me.Action),
			TargetID:  me.TargetID,
			Detail:    me.Detail,
			Timestamp: unixToTime(me.Timestamp),
		})
	}
	return events, cur.Err()
}
