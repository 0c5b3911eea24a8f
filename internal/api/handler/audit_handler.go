package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// AuditHandler exposes the audit trail for review.
type AuditHandler struct {
	trail ports.AuditTrail
}

func NewAuditHandler(trail ports.AuditTrail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

type auditTrailResponse struct {
	ActorID string               `json:"actor_id"`
	Events  []*domain.AuditEvent `json:"events"`
}

// ListByActor handles GET /v1/audit/:actor_id.
//
// @Summary      List recent audit entries for one actor
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id  path      string  true   "Actor id"
// @Param        limit     query     int     false  "Max entries (default 50)"
// @Success      200       {object}  auditTrailResponse
// @Router       /v1/audit/{actor_id} [get]
func (h *AuditHandler) ListByActor(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.trail.ListByActor(c.Request().Context(), c.Param("actor_id"), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.AuditEvent{}
	}

	return c.JSON(http.StatusOK, auditTrailResponse{
		ActorID: c.Param("actor_id"),
		Events:  events,
	})
}
