package domain

import "time"

// AuditKind classifies an audit trail entry.
type AuditKind string

const (
	AuditPermissionUpdate AuditKind = "permission_update"
	AuditOrderCreated     AuditKind = "order_created"
	AuditActionDenied     AuditKind = "action_denied"
)

// AuditEvent records one security-relevant occurrence: a permission change,
// an order creation, or a denied action.
type AuditEvent struct {
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	Kind      AuditKind `json:"kind" bson:"kind"`
	Resource  Resource  `json:"resource,omitempty" bson:"resource,omitempty"`
	Action    Action    `json:"action,omitempty" bson:"action,omitempty"`
	TargetID  string    `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
