package domain

import (
	"errors"
	"fmt"
)

// Resource is a named entity category subject to permissioning.
type Resource string

const (
	ResourceProducts Resource = "products"
	ResourceClients  Resource = "clients"
	ResourceOrders   Resource = "orders"
	ResourceComments Resource = "comments"
	ResourceUsers    Resource = "users"
)

// AllResources is the closed, stable-ordered set of permissioned resources.
// Persisted permission payloads always carry one entry per element, in this order.
var AllResources = []Resource{
	ResourceProducts,
	ResourceClients,
	ResourceOrders,
	ResourceComments,
	ResourceUsers,
}

// Action is one of the four operations a permission can grant.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var ErrUnknownResource = errors.New("unknown resource")
var ErrUnknownAction = errors.New("unknown action")
var ErrForbidden = errors.New("access forbidden")

// ParseResource validates a resource identifier coming in from a boundary
// (URL segment, payload field). Unknown identifiers are rejected rather than
// silently treated as all-false.
func ParseResource(s string) (Resource, error) {
	for _, r := range AllResources {
		if s == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// ParseAction validates an action identifier coming in from a boundary.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionView, ActionCreate, ActionUpdate, ActionDelete:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ResourcePermissions holds the four independent action booleans for one
// resource. No boolean implies another: CanDelete does not grant CanView.
type ResourcePermissions struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// Allows reports whether the given action is granted. An unrecognized action
// is a caller error, distinguishing "not permitted" from "malformed request".
func (p ResourcePermissions) Allows(action Action) (bool, error) {
	switch action {
	case ActionView:
		return p.CanView, nil
	case ActionCreate:
		return p.CanCreate, nil
	case ActionUpdate:
		return p.CanUpdate, nil
	case ActionDelete:
		return p.CanDelete, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// PermissionMatrix maps resources to their granted actions for one actor.
// A resource absent from the map is equivalent to all-false.
type PermissionMatrix map[Resource]ResourcePermissions

// PermissionGrant is the wire shape for one resource's permissions. Persisted
// payloads always contain one grant per resource in AllResources, even when
// all four booleans are false; a partial matrix is not valid persisted state.
type PermissionGrant struct {
	Resource  Resource `json:"resource"`
	CanView   bool     `json:"can_view"`
	CanCreate bool     `json:"can_create"`
	CanUpdate bool     `json:"can_update"`
	CanDelete bool     `json:"can_delete"`
}

// BuildMatrix indexes a sequence of grant records by resource. Grants for
// unknown resources are dropped; resources absent from the input default to
// all-false by virtue of map absence.
func BuildMatrix(grants []PermissionGrant) PermissionMatrix {
	m := make(PermissionMatrix, len(AllResources))
	for _, g := range grants {
		if _, err := ParseResource(string(g.Resource)); err != nil {
			continue
		}
		m[g.Resource] = ResourcePermissions{
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		}
	}
	return m
}

// Authorize resolves whether actor may perform action on resource.
//
// Administrators short-circuit to true without consulting the matrix, so a
// missing or stale matrix can never incorrectly deny an administrator. This
// is the single place the administrator bypass lives. A nil actor denies
// everything. Pure: no I/O, same inputs always yield the same verdict.
func Authorize(actor *Actor, matrix PermissionMatrix, resource Resource, action Action) (bool, error) {
	// Malformed actions fail fast regardless of who is asking.
	if _, err := ParseAction(string(action)); err != nil {
		return false, err
	}
	if actor == nil {
		return false, nil
	}
	if actor.IsAdministrator {
		return true, nil
	}
	perms, ok := matrix[resource]
	if !ok {
		return false, nil
	}
	return perms.Allows(action)
}

// Gate evaluates Authorize once and runs guarded when the verdict is true,
// fallback otherwise. A nil fallback denies with ErrForbidden. Malformed
// resource/action identifiers surface as errors, never as a silent deny.
func Gate(actor *Actor, matrix PermissionMatrix, resource Resource, action Action, guarded, fallback func() error) error {
	ok, err := Authorize(actor, matrix, resource, action)
	if err != nil {
		return err
	}
	if ok {
		return guarded()
	}
	if fallback != nil {
		return fallback()
	}
	return ErrForbidden
}
