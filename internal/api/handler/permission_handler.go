package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/api/metrics"
	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// PermissionHandler exposes the permission matrices of non-administrator users.
type PermissionHandler struct {
	service ports.PermissionService
}

func NewPermissionHandler(service ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{service: service}
}

type grantPayload struct {
	Resource  string `json:"resource" validate:"required"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanUpdate bool   `json:"can_update"`
	CanDelete bool   `json:"can_delete"`
}

type updatePermissionsRequest struct {
	// Permissions is a full replacement of the target's matrix. Resources
	// omitted here end up all-false, never "unchanged".
	Permissions []grantPayload `json:"permissions" validate:"required,dive"`
}

type permissionsResponse struct {
	UserID      string         `json:"user_id"`
	Permissions []grantPayload `json:"permissions"`
}

// Get handles GET /v1/permissions/:user_id.
//
// @Summary      Get a user's permission grants
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Target user id"
// @Success      200      {object}  permissionsResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/permissions/{user_id} [get]
func (h *PermissionHandler) Get(c echo.Context) error {
	targetID := c.Param("user_id")

	grants, err := h.service.GetGrants(c.Request().Context(), targetID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, permissionsResponse{
		UserID:      targetID,
		Permissions: toGrantPayloads(grants),
	})
}

// Update handles PUT /v1/permissions/:user_id.
//
// @Summary      Replace a user's permission grants
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string                    true  "Target user id"
// @Param        body     body      updatePermissionsRequest  true  "Full replacement grant list"
// @Success      200      {object}  permissionsResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/permissions/{user_id} [put]
func (h *PermissionHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	targetID := c.Param("user_id")

	var req updatePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grants := make([]domain.PermissionGrant, 0, len(req.Permissions))
	for _, g := range req.Permissions {
		resource, err := domain.ParseResource(g.Resource)
		if err != nil {
			return err
		}
		grants = append(grants, domain.PermissionGrant{
			Resource:  resource,
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		})
	}

	stored, err := h.service.ReplaceGrants(c.Request().Context(), actor.ID, targetID, grants)
	if err != nil {
		return err
	}

	metrics.PermissionUpdatesTotal.Inc()

	return c.JSON(http.StatusOK, permissionsResponse{
		UserID:      targetID,
		Permissions: toGrantPayloads(stored),
	})
}

func toGrantPayloads(grants []domain.PermissionGrant) []grantPayload {
	out := make([]grantPayload, 0, len(grants))
	for _, g := range grants {
		out = append(out, grantPayload{
			Resource:  string(g.Resource),
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		})
	}
	return out
}
