package domain

import (
	"errors"
	"testing"
)

func newTestEditor(t *testing.T, grants []PermissionGrant) *MatrixEditor {
	t.Helper()
	ed, err := NewMatrixEditor(Actor{ID: "target_1"}, grants)
	if err != nil {
		t.Fatalf("unexpected error opening editor: %v", err)
	}
	return ed
}

func TestNewMatrixEditor_RejectsAdministrator(t *testing.T) {
	_, err := NewMatrixEditor(Actor{ID: "admin_1", IsAdministrator: true}, nil)
	if !errors.Is(err, ErrAdminNotEditable) {
		t.Fatalf("expected ErrAdminNotEditable, got %v", err)
	}
}

func TestMatrixEditor_PayloadIsTotalAndOrdered(t *testing.T) {
	// Sparse input: only one resource has any grants.
	ed := newTestEditor(t, []PermissionGrant{
		{Resource: ResourceOrders, CanView: true, CanCreate: true},
	})

	payload := ed.Payload()
	if len(payload) != len(AllResources) {
		t.Fatalf("payload must cover all resources: got %d, want %d", len(payload), len(AllResources))
	}
	for i, g := range payload {
		if g.Resource != AllResources[i] {
			t.Errorf("position %d: got %q, want %q", i, g.Resource, AllResources[i])
		}
	}

	for _, g := range payload {
		if g.Resource == ResourceOrders {
			if !g.CanView || !g.CanCreate || g.CanUpdate || g.CanDelete {
				t.Errorf("orders grant mangled: %+v", g)
			}
			continue
		}
		if g.CanView || g.CanCreate || g.CanUpdate || g.CanDelete {
			t.Errorf("%s should be all-false, got %+v", g.Resource, g)
		}
	}
}

func TestMatrixEditor_ToggleFlipsOneCell(t *testing.T) {
	ed := newTestEditor(t, []PermissionGrant{
		{Resource: ResourceProducts, CanView: true, CanDelete: true},
	})

	if err := ed.Toggle(ResourceProducts, ActionView); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := ed.Matrix()
	perms := m[ResourceProducts]
	if perms.CanView {
		t.Error("view should have been revoked")
	}
	if !perms.CanDelete {
		t.Error("delete must be untouched")
	}

	// Toggling again restores the original state.
	if err := ed.Toggle(ResourceProducts, ActionView); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ed.Matrix()[ResourceProducts].CanView {
		t.Error("second toggle should restore view")
	}
}

func TestMatrixEditor_ToggleRejectsUnknownIdentifiers(t *testing.T) {
	ed := newTestEditor(t, nil)

	if err := ed.Toggle(Resource("invoices"), ActionView); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
	if err := ed.Toggle(ResourceProducts, Action("export")); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestMatrixEditor_GrantAll(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.GrantAll()

	for _, g := range ed.Payload() {
		if !g.CanView || !g.CanCreate || !g.CanUpdate || !g.CanDelete {
			t.Errorf("%s not fully granted: %+v", g.Resource, g)
		}
	}
}

func TestMatrixEditor_ViewOnly(t *testing.T) {
	ed := newTestEditor(t, []PermissionGrant{
		{Resource: ResourceUsers, CanDelete: true},
	})
	ed.ViewOnly()

	for _, g := range ed.Payload() {
		if !g.CanView {
			t.Errorf("%s missing view", g.Resource)
		}
		if g.CanCreate || g.CanUpdate || g.CanDelete {
			t.Errorf("%s retained a mutation grant: %+v", g.Resource, g)
		}
	}
}

func TestMatrixEditor_ClearAll(t *testing.T) {
	ed := newTestEditor(t, []PermissionGrant{
		{Resource: ResourceClients, CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true},
	})
	ed.ClearAll()

	for _, g := range ed.Payload() {
		if g.CanView || g.CanCreate || g.CanUpdate || g.CanDelete {
			t.Errorf("%s not cleared: %+v", g.Resource, g)
		}
	}
}

func TestMatrixEditor_MatrixDoesNotAliasInternalState(t *testing.T) {
	ed := newTestEditor(t, []PermissionGrant{
		{Resource: ResourceProducts, CanView: true},
	})

	snapshot := ed.Matrix()
	snapshot[ResourceProducts] = ResourcePermissions{}

	if !ed.Matrix()[ResourceProducts].CanView {
		t.Error("mutating a returned matrix must not affect the editor")
	}
}
