package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

const maxOrderPageSize = 100

// OrderService validates submitted order drafts and persists accepted orders.
// Validation runs in full before the repository is touched: a structurally
// invalid draft never reaches the persistence boundary.
type OrderService struct {
	repo     ports.OrderRepository
	clients  ports.ClientRepository
	products ports.ProductRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, clients ports.ClientRepository, products ports.ProductRepository, audit ports.AuditSink, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, clients: clients, products: products, audit: audit, log: log}
}

// Create runs the pre-submission validation sequence over the draft and, when
// it passes, persists a new order with a server-assigned order number, pending
// status, and the submitting actor as creator.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	draft := domain.OrderDraft{
		ClientRef: in.ClientID,
		Items:     make([]domain.LineItem, 0, len(in.Items)),
		Payments:  make([]domain.PaymentAllocation, 0, len(in.Payments)),
		Notes:     in.Notes,
	}
	for _, it := range in.Items {
		draft.Items = append(draft.Items, domain.LineItem{
			ProductRef: it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	for _, p := range in.Payments {
		// A trailing allocation with no method and no amount is an omitted
		// second payment, not a validation failure.
		if p.Method == "" && p.Amount == 0 && len(draft.Payments) > 0 {
			continue
		}
		draft.Payments = append(draft.Payments, domain.PaymentAllocation{Method: p.Method, Amount: p.Amount})
	}

	validated, err := domain.ValidateDraft(draft)
	if err != nil {
		s.log.Debug().Err(err).Str("client_id", in.ClientID).Msg("order draft rejected")
		return nil, err
	}

	// Referenced entities must exist before anything is written.
	if _, err := s.clients.FindByID(ctx, validated.ClientRef); err != nil {
		return nil, err
	}
	for _, it := range validated.Items {
		if _, err := s.products.FindByID(ctx, it.ProductRef); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber: generateOrderNumber(),
		ClientID:    validated.ClientRef,
		Items:       validated.Items,
		TotalAmount: validated.TotalAmount,
		Payments:    validated.Payments,
		Status:      domain.OrderPending,
		Notes:       validated.Notes,
		CreatedBy:   in.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorID:   in.ActorID,
		Kind:      domain.AuditOrderCreated,
		Resource:  domain.ResourceOrders,
		Action:    domain.ActionCreate,
		TargetID:  created.ID,
		Detail:    created.OrderNumber,
		Timestamp: now,
	})

	s.log.Info().
		Str("order_number", created.OrderNumber).
		Str("client_id", created.ClientID).
		Float64("total", created.TotalAmount).
		Msg("order created")

	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter ports.ListOrdersFilter) (*ports.ListOrdersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxOrderPageSize {
		filter.Limit = 20
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus applies a lifecycle transition, rejecting moves the state
// machine does not allow.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	next := domain.OrderStatus(status)
	switch next {
	case domain.OrderPending, domain.OrderProcessing, domain.OrderCompleted, domain.OrderCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidOrderTransition, status)
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidOrderTransition, order.Status, next)
	}

	return s.repo.UpdateStatus(ctx, id, next)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// generateOrderNumber returns a unique order number in the format ORD-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
