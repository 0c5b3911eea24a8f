package domain

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Composer
// ---------------------------------------------------------------------------

func TestComposer_AddItemSeedsFromCatalog(t *testing.T) {
	c := NewComposer().AddItem(&CatalogProduct{ID: "p1", Name: "Widget", Price: 19.99})

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ProductRef != "p1" {
		t.Errorf("product ref: got %q", items[0].ProductRef)
	}
	if items[0].Quantity != 1 {
		t.Errorf("new lines default to quantity 1, got %d", items[0].Quantity)
	}
	if items[0].UnitPrice != 19.99 {
		t.Errorf("unit price not seeded from catalog: got %v", items[0].UnitPrice)
	}
}

func TestComposer_AddItemNilProductIsBlankLine(t *testing.T) {
	c := NewComposer().AddItem(nil)

	items := c.Items()
	if items[0].ProductRef != "" || items[0].UnitPrice != 0 {
		t.Errorf("blank line expected, got %+v", items[0])
	}
	if items[0].Quantity != 1 {
		t.Errorf("blank line still defaults to quantity 1, got %d", items[0].Quantity)
	}
}

func TestComposer_RemoveItemPreservesOrder(t *testing.T) {
	c := NewComposer().
		AddItem(&CatalogProduct{ID: "a", Price: 1}).
		AddItem(&CatalogProduct{ID: "b", Price: 2}).
		AddItem(&CatalogProduct{ID: "c", Price: 3})

	c, err := c.RemoveItem(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductRef != "a" || items[1].ProductRef != "c" {
		t.Errorf("order mangled: [%s %s]", items[0].ProductRef, items[1].ProductRef)
	}
}

func TestComposer_RemoveItemOutOfRange(t *testing.T) {
	c := NewComposer().AddItem(nil)

	if _, err := c.RemoveItem(1); !errors.Is(err, ErrItemIndex) {
		t.Fatalf("expected ErrItemIndex, got %v", err)
	}
	if _, err := c.RemoveItem(-1); !errors.Is(err, ErrItemIndex) {
		t.Fatalf("expected ErrItemIndex, got %v", err)
	}
}

func TestComposer_SetProductReseedsPrice(t *testing.T) {
	c := NewComposer().AddItem(&CatalogProduct{ID: "p1", Price: 10})

	c, err := c.SetProduct(0, CatalogProduct{ID: "p2", Price: 25.50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it := c.Items()[0]
	if it.ProductRef != "p2" {
		t.Errorf("product ref: got %q", it.ProductRef)
	}
	if it.UnitPrice != 25.50 {
		t.Errorf("price must follow the newly selected product: got %v", it.UnitPrice)
	}
}

func TestComposer_MutationsDoNotAffectSnapshots(t *testing.T) {
	before := NewComposer().AddItem(&CatalogProduct{ID: "p1", Price: 10})

	after, err := before.SetQuantity(0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before.Items()[0].Quantity != 1 {
		t.Error("earlier snapshot observed a later edit")
	}
	if after.Items()[0].Quantity != 5 {
		t.Error("edit lost")
	}
}

func TestComposer_GrandTotal(t *testing.T) {
	c := NewComposer().
		AddItem(&CatalogProduct{ID: "a", Price: 10.50}).
		AddItem(&CatalogProduct{ID: "b", Price: 3.25})
	c, _ = c.SetQuantity(0, 2)

	// 2*10.50 + 1*3.25
	if got := c.GrandTotal(); got != 24.25 {
		t.Errorf("grand total: got %v, want 24.25", got)
	}
}

// ---------------------------------------------------------------------------
// Reconcile
// ---------------------------------------------------------------------------

func TestReconcile_SinglePaymentExactMatch(t *testing.T) {
	err := Reconcile([]PaymentAllocation{{Method: "cash", Amount: 100}}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconcile_SplitPaymentCoversTotal(t *testing.T) {
	allocs := []PaymentAllocation{
		{Method: "cash", Amount: 60},
		{Method: "card", Amount: 40},
	}
	if err := Reconcile(allocs, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconcile_ToleranceBoundary(t *testing.T) {
	// A difference of exactly 0.01 is accepted; anything beyond is not.
	cases := []struct {
		name    string
		amount  float64
		total   float64
		wantErr error
	}{
		{"one cent under", 99.99, 100, nil},
		{"one cent over", 100.01, 100, nil},
		{"half a cent under", 99.995, 100, nil},
		{"beyond tolerance", 99.98, 100, ErrMismatchedTotal},
		{"just beyond tolerance", 99.989, 100, ErrMismatchedTotal},
	}
	for _, tc := range cases {
		err := Reconcile([]PaymentAllocation{{Method: "cash", Amount: tc.amount}}, tc.total)
		if !errors.Is(err, tc.wantErr) && !(tc.wantErr == nil && err == nil) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestReconcile_SplitShortfall(t *testing.T) {
	allocs := []PaymentAllocation{
		{Method: "cash", Amount: 60},
		{Method: "card", Amount: 39.98},
	}
	if err := Reconcile(allocs, 100); !errors.Is(err, ErrMismatchedTotal) {
		t.Fatalf("expected ErrMismatchedTotal, got %v", err)
	}
}

func TestReconcile_MissingPrimaryMethod(t *testing.T) {
	if err := Reconcile(nil, 100); !errors.Is(err, ErrMissingPrimaryMethod) {
		t.Fatalf("expected ErrMissingPrimaryMethod for no allocations, got %v", err)
	}
	allocs := []PaymentAllocation{{Method: "", Amount: 100}}
	if err := Reconcile(allocs, 100); !errors.Is(err, ErrMissingPrimaryMethod) {
		t.Fatalf("expected ErrMissingPrimaryMethod for blank method, got %v", err)
	}
}

func TestReconcile_SecondaryAmountWithoutMethod(t *testing.T) {
	allocs := []PaymentAllocation{
		{Method: "cash", Amount: 60},
		{Method: "", Amount: 40},
	}
	if err := Reconcile(allocs, 100); !errors.Is(err, ErrInvalidSecondaryMethod) {
		t.Fatalf("expected ErrInvalidSecondaryMethod, got %v", err)
	}
}

func TestReconcile_EmptySecondaryAllocationIsIgnored(t *testing.T) {
	allocs := []PaymentAllocation{
		{Method: "cash", Amount: 100},
		{Method: "", Amount: 0},
	}
	if err := Reconcile(allocs, 100); err != nil {
		t.Fatalf("second allocation with no method and no amount must be ignored: %v", err)
	}
}

// ---------------------------------------------------------------------------
// ValidateDraft
// ---------------------------------------------------------------------------

func validDraft() OrderDraft {
	return OrderDraft{
		ClientRef: "client_1",
		Items: []LineItem{
			{ProductRef: "p1", Quantity: 2, UnitPrice: 30},
			{ProductRef: "p2", Quantity: 1, UnitPrice: 40},
		},
		Payments: []PaymentAllocation{{Method: "transfer", Amount: 100}},
	}
}

func TestValidateDraft_Success(t *testing.T) {
	v, err := ValidateDraft(validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.TotalAmount != 100 {
		t.Errorf("total: got %v, want 100", v.TotalAmount)
	}
	if len(v.Items) != 2 {
		t.Errorf("items: got %d", len(v.Items))
	}
}

func TestValidateDraft_EmptyOrderWinsFirst(t *testing.T) {
	// No items and no payments: the empty-order violation must be reported,
	// not the payment one.
	draft := OrderDraft{ClientRef: "client_1"}
	if _, err := ValidateDraft(draft); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestValidateDraft_ItemViolationsInOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*OrderDraft)
		wantErr error
	}{
		{"missing product", func(d *OrderDraft) { d.Items[0].ProductRef = "" }, ErrMissingProduct},
		{"zero quantity", func(d *OrderDraft) { d.Items[1].Quantity = 0 }, ErrInvalidQuantity},
		{"negative price", func(d *OrderDraft) { d.Items[1].UnitPrice = -5 }, ErrInvalidUnitPrice},
	}
	for _, tc := range cases {
		draft := validDraft()
		tc.mutate(&draft)
		if _, err := ValidateDraft(draft); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidateDraft_MissingProductReportedBeforePayment(t *testing.T) {
	// Both an item violation and a payment mismatch: the item check runs
	// first, so that is the error the caller sees.
	draft := validDraft()
	draft.Items[0].ProductRef = ""
	draft.Payments[0].Amount = 1

	if _, err := ValidateDraft(draft); !errors.Is(err, ErrMissingProduct) {
		t.Fatalf("expected ErrMissingProduct, got %v", err)
	}
}

func TestValidateDraft_PaymentMismatch(t *testing.T) {
	draft := validDraft()
	draft.Payments[0].Amount = 90

	if _, err := ValidateDraft(draft); !errors.Is(err, ErrMismatchedTotal) {
		t.Fatalf("expected ErrMismatchedTotal, got %v", err)
	}
}

func TestValidateDraft_CopiesSlices(t *testing.T) {
	draft := validDraft()
	v, err := ValidateDraft(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft.Items[0].Quantity = 99
	draft.Payments[0].Amount = 0

	if v.Items[0].Quantity != 2 {
		t.Error("validated order aliases the draft's item slice")
	}
	if v.Payments[0].Amount != 100 {
		t.Error("validated order aliases the draft's payment slice")
	}
}
