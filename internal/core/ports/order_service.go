package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// OrderItemInput is one line of a submitted order draft.
type OrderItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// PaymentInput declares one payment allocation of a submitted order draft.
type PaymentInput struct {
	Method string
	Amount float64
}

// CreateOrderInput carries a complete order draft plus the submitting actor.
// The draft is validated in full before anything touches persistence.
type CreateOrderInput struct {
	ClientID string
	Items    []OrderItemInput
	// Payments holds one or two allocations; a second entry with no method
	// and no amount is treated as omitted.
	Payments []PaymentInput
	Notes    string
	ActorID  string
}

// ListOrdersResult is returned by List.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) (*ListOrdersResult, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
