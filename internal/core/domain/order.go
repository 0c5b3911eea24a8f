package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a persisted order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

var ErrInvalidOrderTransition = errors.New("invalid order status transition")
var ErrOrderNotFound = errors.New("order not found")

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Completed and cancelled orders are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentAllocation declares how much of an order's total is settled with a
// given payment method. An order carries one or two allocations.
type PaymentAllocation struct {
	Method string  `json:"method" bson:"method"`
	Amount float64 `json:"amount" bson:"amount"`
}

// Order is the persisted aggregate returned by the order repository. The
// server assigns the order number, status, and creator; clients only submit
// validated drafts.
type Order struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	OrderNumber string              `json:"order_number" bson:"order_number"`
	ClientID    string              `json:"client_id" bson:"client_id"`
	Items       []LineItem          `json:"items" bson:"items"`
	TotalAmount float64             `json:"total_amount" bson:"total_amount"`
	Payments    []PaymentAllocation `json:"payments" bson:"payments"`
	Status      OrderStatus         `json:"status" bson:"status"`
	Notes       string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy   string              `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}
