package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/core/domain"
)

type fixedMatrixProvider struct {
	matrix domain.PermissionMatrix
	err    error
	calls  int
}

func (p *fixedMatrixProvider) MatrixFor(_ context.Context, _ string) (domain.PermissionMatrix, error) {
	p.calls++
	return p.matrix, p.err
}

type recordingSink struct {
	events []domain.AuditEvent
}

func (s *recordingSink) Enqueue(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

func newAuthorizedContext(e *echo.Echo, actor domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(actorKey, actor)
	return c, rec
}

func TestAuthorize_AllowsGrantedActor(t *testing.T) {
	e := echo.New()
	c, rec := newAuthorizedContext(e, domain.Actor{ID: "user_1"})
	provider := &fixedMatrixProvider{matrix: domain.PermissionMatrix{
		domain.ResourceProducts: {CanView: true},
	}}
	sink := &recordingSink{}

	called := false
	mw := Authorize(provider, sink, domain.ResourceProducts, domain.ActionView)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sink.events) != 0 {
		t.Fatalf("allowed requests must not be audited as denials")
	}
}

func TestAuthorize_DeniesAndAudits(t *testing.T) {
	e := echo.New()
	c, rec := newAuthorizedContext(e, domain.Actor{ID: "user_2"})
	provider := &fixedMatrixProvider{matrix: domain.PermissionMatrix{}}
	sink := &recordingSink{}

	mw := Authorize(provider, sink, domain.ResourceOrders, domain.ActionDelete)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("denial must respond, not error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != domain.AuditActionDenied {
		t.Fatalf("audit kind: got %q", ev.Kind)
	}
	if ev.ActorID != "user_2" || ev.Resource != domain.ResourceOrders || ev.Action != domain.ActionDelete {
		t.Fatalf("audit event wrong: %+v", ev)
	}
}

func TestAuthorize_AdministratorSkipsMatrixFetch(t *testing.T) {
	e := echo.New()
	c, rec := newAuthorizedContext(e, domain.Actor{ID: "root", IsAdministrator: true})
	provider := &fixedMatrixProvider{err: errors.New("matrix store down")}
	sink := &recordingSink{}

	mw := Authorize(provider, sink, domain.ResourceUsers, domain.ActionDelete)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("matrix must not be fetched for administrators")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_MatrixFetchFailureDeniesRegularActor(t *testing.T) {
	e := echo.New()
	c, _ := newAuthorizedContext(e, domain.Actor{ID: "user_3"})
	provider := &fixedMatrixProvider{err: errors.New("matrix store down")}

	mw := Authorize(provider, &recordingSink{}, domain.ResourceClients, domain.ActionView)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err == nil {
		t.Fatalf("expected the fetch error to surface")
	}
}

func TestAuthorize_MissingActorIsUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authorize(&fixedMatrixProvider{}, &recordingSink{}, domain.ResourceProducts, domain.ActionView)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
