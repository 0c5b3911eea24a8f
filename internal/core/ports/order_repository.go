package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// ListOrdersFilter carries query parameters for listing orders.
type ListOrdersFilter struct {
	ClientID string // optional: scope to one client
	Status   string // optional: filter by order status
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns a page of orders matching filter and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
