package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/api/middleware"
	"github.com/backoffice/console-api/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: presence proves the middleware
// ran; a route missing it is a wiring error surfaced as 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
