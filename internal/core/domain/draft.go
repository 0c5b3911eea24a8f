package domain

import (
	"errors"
	"math"
)

// LineItem is one product/quantity/price entry within an order.
// The line total is always derived from Quantity and UnitPrice, never stored
// alongside them while the order is being composed.
type LineItem struct {
	ProductRef string  `json:"product_id" bson:"product_id"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	UnitPrice  float64 `json:"unit_price" bson:"unit_price"`
}

// Total returns quantity * unit price for this line.
func (it LineItem) Total() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// CatalogProduct is the projection of a catalog entry the composer needs for
// seeding new lines: identity and current price.
type CatalogProduct struct {
	ID    string
	Name  string
	Price float64
}

// Composer accumulates the ordered line items of an order draft. Every
// mutator returns a new Composer value built over a fresh item slice, so a
// previously captured snapshot never observes later edits.
type Composer struct {
	items []LineItem
}

// NewComposer returns an empty composer.
func NewComposer() Composer {
	return Composer{}
}

// Items returns a copy of the current line items in order.
func (c Composer) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items.
func (c Composer) Len() int { return len(c.items) }

// AddItem appends a line seeded from the given catalog product with
// quantity 1. A nil product appends a blank line (unset product reference,
// zero price) that must be resolved before the draft can validate.
func (c Composer) AddItem(product *CatalogProduct) Composer {
	item := LineItem{Quantity: 1}
	if product != nil {
		item.ProductRef = product.ID
		item.UnitPrice = product.Price
	}
	next := make([]LineItem, len(c.items)+1)
	copy(next, c.items)
	next[len(c.items)] = item
	return Composer{items: next}
}

var ErrItemIndex = errors.New("line item index out of range")

// RemoveItem removes the line at index, preserving the relative order of the
// remaining items.
func (c Composer) RemoveItem(index int) (Composer, error) {
	if index < 0 || index >= len(c.items) {
		return c, ErrItemIndex
	}
	next := make([]LineItem, 0, len(c.items)-1)
	next = append(next, c.items[:index]...)
	next = append(next, c.items[index+1:]...)
	return Composer{items: next}, nil
}

// SetProduct points the line at index to a catalog entry and re-seeds its
// unit price from that entry's current price. A later SetUnitPrice override
// is not reverted by anything.
func (c Composer) SetProduct(index int, product CatalogProduct) (Composer, error) {
	return c.update(index, func(it *LineItem) {
		it.ProductRef = product.ID
		it.UnitPrice = product.Price
	})
}

// SetQuantity replaces the quantity of the line at index.
func (c Composer) SetQuantity(index, quantity int) (Composer, error) {
	return c.update(index, func(it *LineItem) { it.Quantity = quantity })
}

// SetUnitPrice replaces the unit price of the line at index.
func (c Composer) SetUnitPrice(index int, price float64) (Composer, error) {
	return c.update(index, func(it *LineItem) { it.UnitPrice = price })
}

func (c Composer) update(index int, mutate func(*LineItem)) (Composer, error) {
	if index < 0 || index >= len(c.items) {
		return c, ErrItemIndex
	}
	next := make([]LineItem, len(c.items))
	copy(next, c.items)
	mutate(&next[index])
	return Composer{items: next}, nil
}

// GrandTotal returns the sum of all line totals, recomputed from current
// state on every call.
func (c Composer) GrandTotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Total()
	}
	return sum
}

// paymentTolerance absorbs decimal rounding from per-line multiplication.
// It is a fixed design constant; a difference of exactly 0.01 is accepted.
const paymentTolerance = 0.01

// floatSlack keeps binary float representation error from flipping the
// tolerance boundary: 100.00-99.99 computes to slightly more than 0.01.
const floatSlack = 1e-9

var ErrEmptyOrder = errors.New("order has no items")
var ErrMissingProduct = errors.New("line item has no product selected")
var ErrInvalidQuantity = errors.New("line item quantity must be at least 1")
var ErrInvalidUnitPrice = errors.New("line item unit price must not be negative")
var ErrMismatchedTotal = errors.New("payment amounts do not equal order total")
var ErrMissingPrimaryMethod = errors.New("primary payment method is required")
var ErrInvalidSecondaryMethod = errors.New("secondary payment amount given without a method")

// Reconcile checks that the declared payment allocations cover grandTotal
// within the fixed tolerance. Allocation rules: the first allocation must
// name a method; a second allocation with a positive amount must name one
// too (a second allocation with no method and no amount is treated as
// omitted). Failures are distinguishable by sentinel error.
func Reconcile(allocations []PaymentAllocation, grandTotal float64) error {
	if len(allocations) == 0 || allocations[0].Method == "" {
		return ErrMissingPrimaryMethod
	}
	if len(allocations) > 1 && allocations[1].Method == "" && allocations[1].Amount > 0 {
		return ErrInvalidSecondaryMethod
	}
	var declared float64
	for _, a := range allocations {
		declared += a.Amount
	}
	if math.Abs(declared-grandTotal) > paymentTolerance+floatSlack {
		return ErrMismatchedTotal
	}
	return nil
}

// OrderDraft is the transient, client-side working state of an order being
// composed: discarded on cancel, validated and submitted in full on confirm.
type OrderDraft struct {
	ClientRef string
	Items     []LineItem
	Payments  []PaymentAllocation
	Notes     string
}

// ValidatedOrder is a draft that passed ValidateDraft, with its total
// materialized, ready for the create-order call.
type ValidatedOrder struct {
	ClientRef   string
	Items       []LineItem
	TotalAmount float64
	Payments    []PaymentAllocation
	Notes       string
}

// ValidateDraft runs the pre-submission checks in order, stopping at the
// first violation so the caller reports one actionable reason:
//
//  1. the draft must contain at least one item;
//  2. each item, in order, must reference a product, have quantity >= 1 and
//     a non-negative unit price;
//  3. the payment allocations must reconcile against the grand total.
//
// A structurally invalid draft never reaches the persistence boundary.
func ValidateDraft(draft OrderDraft) (*ValidatedOrder, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	var total float64
	for _, it := range draft.Items {
		if it.ProductRef == "" {
			return nil, ErrMissingProduct
		}
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitPrice < 0 {
			return nil, ErrInvalidUnitPrice
		}
		total += it.Total()
	}
	if err := Reconcile(draft.Payments, total); err != nil {
		return nil, err
	}

	items := make([]LineItem, len(draft.Items))
	copy(items, draft.Items)
	payments := make([]PaymentAllocation, len(draft.Payments))
	copy(payments, draft.Payments)

	return &ValidatedOrder{
		ClientRef:   draft.ClientRef,
		Items:       items,
		TotalAmount: total,
		Payments:    payments,
		Notes:       draft.Notes,
	}, nil
}
