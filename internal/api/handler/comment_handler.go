package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Content   string `json:"content" validate:"required"`
	RelatedTo string `json:"related_to" validate:"required,oneof=order client product"`
	RelatedID string `json:"related_id" validate:"required"`
}

func (h *CommentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), ports.CommentInput{
		Content:   req.Content,
		RelatedTo: req.RelatedTo,
		RelatedID: req.RelatedID,
		AuthorID:  actor.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Update(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.CommentInput{
		Content:   req.Content,
		RelatedTo: req.RelatedTo,
		RelatedID: req.RelatedID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
