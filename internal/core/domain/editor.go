package domain

import "errors"

var ErrAdminNotEditable = errors.New("administrator permissions are not editable")

// MatrixEditor is the working copy of one non-administrator actor's
// PermissionMatrix during an editing session. It is transient state: built
// from the fetched grants, mutated in memory only, and either discarded or
// converted wholesale into a persistable payload. Nothing here performs I/O.
type MatrixEditor struct {
	targetID string
	matrix   PermissionMatrix
}

// NewMatrixEditor opens an editing session over the target actor's current
// grants. Administrators have no matrix; opening an editor for one is a
// caller error.
func NewMatrixEditor(target Actor, grants []PermissionGrant) (*MatrixEditor, error) {
	if target.IsAdministrator {
		return nil, ErrAdminNotEditable
	}
	return &MatrixEditor{targetID: target.ID, matrix: BuildMatrix(grants)}, nil
}

// TargetID returns the actor whose matrix is being edited.
func (e *MatrixEditor) TargetID() string { return e.targetID }

// Toggle flips exactly one boolean, leaving every other cell untouched.
func (e *MatrixEditor) Toggle(resource Resource, action Action) error {
	if _, err := ParseResource(string(resource)); err != nil {
		return err
	}
	perms := e.matrix[resource]
	switch action {
	case ActionView:
		perms.CanView = !perms.CanView
	case ActionCreate:
		perms.CanCreate = !perms.CanCreate
	case ActionUpdate:
		perms.CanUpdate = !perms.CanUpdate
	case ActionDelete:
		perms.CanDelete = !perms.CanDelete
	default:
		_, err := ParseAction(string(action))
		return err
	}
	e.matrix[resource] = perms
	return nil
}

// GrantAll sets every action on every recognized resource to true.
func (e *MatrixEditor) GrantAll() {
	for _, r := range AllResources {
		e.matrix[r] = ResourcePermissions{CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true}
	}
}

// ViewOnly grants view and revokes create/update/delete on every resource.
func (e *MatrixEditor) ViewOnly() {
	for _, r := range AllResources {
		e.matrix[r] = ResourcePermissions{CanView: true}
	}
}

// ClearAll empties the working matrix, equivalent to all-false everywhere.
func (e *MatrixEditor) ClearAll() {
	e.matrix = make(PermissionMatrix, len(AllResources))
}

// Matrix returns a copy of the working matrix. The editor never aliases its
// internal state to callers.
func (e *MatrixEditor) Matrix() PermissionMatrix {
	out := make(PermissionMatrix, len(e.matrix))
	for r, p := range e.matrix {
		out[r] = p
	}
	return out
}

// Payload materializes the working matrix as one grant per resource in
// AllResources order, with every boolean explicit. The payload is always a
// full replacement of the target's matrix: a sparse payload could otherwise
// be read as "leave unspecified resources unchanged" at the persistence
// boundary, which is not valid state.
func (e *MatrixEditor) Payload() []PermissionGrant {
	grants := make([]PermissionGrant, 0, len(AllResources))
	for _, r := range AllResources {
		perms := e.matrix[r]
		grants = append(grants, PermissionGrant{
			Resource:  r,
			CanView:   perms.CanView,
			CanCreate: perms.CanCreate,
			CanUpdate: perms.CanUpdate,
			CanDelete: perms.CanDelete,
		})
	}
	return grants
}
