package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/api/metrics"
	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// Authorize enforces resource/action permissions at the API boundary. This is
// the authoritative check: clients hide affordances the actor cannot use, but
// only this gate actually refuses the mutation.
//
// The administrator bypass lives inside domain.Authorize; nothing here
// re-implements it. Matrices are only fetched for non-administrators, so a
// cache or storage outage can never lock an administrator out.
func Authorize(matrices ports.MatrixProvider, audit ports.AuditSink, resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			var matrix domain.PermissionMatrix
			if !actor.IsAdministrator {
				var err error
				matrix, err = matrices.MatrixFor(c.Request().Context(), actor.ID)
				if err != nil {
					return err
				}
			}

			return domain.Gate(&actor, matrix, resource, action,
				func() error {
					metrics.AuthzDecisionsTotal.WithLabelValues(string(resource), string(action), "allow").Inc()
					return next(c)
				},
				func() error {
					metrics.AuthzDecisionsTotal.WithLabelValues(string(resource), string(action), "deny").Inc()
					audit.Enqueue(domain.AuditEvent{
						ActorID:   actor.ID,
						Kind:      domain.AuditActionDenied,
						Resource:  resource,
						Action:    action,
						Timestamp: time.Now().UTC(),
					})
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				})
		}
	}
}
