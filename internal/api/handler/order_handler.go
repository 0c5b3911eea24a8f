package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/console-api/internal/api/metrics"
	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	ClientID string             `json:"client_id" validate:"required"`
	Items    []orderItemRequest `json:"items"`
	// The draft's own validation sequence owns item and payment rules, so the
	// request schema stays permissive beyond the client reference.
	PaymentMethod1 string  `json:"payment_method_1"`
	PaymentAmount1 float64 `json:"payment_amount_1"`
	PaymentMethod2 string  `json:"payment_method_2"`
	PaymentAmount2 float64 `json:"payment_amount_2"`
	Notes          string  `json:"notes"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listOrdersResponse struct {
	Items      []*domain.Order `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Create handles POST /v1/orders.
//
// @Summary      Create a new order from a composed draft
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order draft"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CreateOrderInput{
		ClientID: req.ClientID,
		Items:    make([]ports.OrderItemInput, 0, len(req.Items)),
		Payments: []ports.PaymentInput{
			{Method: req.PaymentMethod1, Amount: req.PaymentAmount1},
			{Method: req.PaymentMethod2, Amount: req.PaymentAmount2},
		},
		Notes:   req.Notes,
		ActorID: actor.ID,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	order, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		if reason, rejected := rejectionReason(err); rejected {
			metrics.OrderRejectionsTotal.WithLabelValues(reason).Inc()
		}
		return err
	}

	shape := "single"
	if len(order.Payments) > 1 {
		shape = "split"
	}
	metrics.OrdersCreatedTotal.WithLabelValues(shape).Inc()

	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter by client"
// @Param        status     query     string  false  "Filter by status"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListOrdersFilter{
		ClientID: c.QueryParam("client_id"),
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listOrdersResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus handles PATCH /v1/orders/:id/status.
//
// @Summary      Apply an order lifecycle transition
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /v1/orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// rejectionReason maps a draft validation failure to its metric label.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return "empty_order", true
	case errors.Is(err, domain.ErrMissingProduct):
		return "missing_product", true
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity", true
	case errors.Is(err, domain.ErrInvalidUnitPrice):
		return "invalid_unit_price", true
	case errors.Is(err, domain.ErrMismatchedTotal):
		return "mismatched_total", true
	case errors.Is(err, domain.ErrMissingPrimaryMethod):
		return "missing_primary_method", true
	case errors.Is(err, domain.ErrInvalidSecondaryMethod):
		return "invalid_secondary_method", true
	}
	return "", false
}
