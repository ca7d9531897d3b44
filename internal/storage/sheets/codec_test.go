package sheets

import (
	"testing"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

func TestCellReadersTolerateHandEditedValues(t *testing.T) {
	row := []interface{}{" ORD-1 ", 12500.0, "13 500,50", true, "yes", nil}

	if got := cellString(row, 0); got != "ORD-1" {
		t.Errorf("expected trimmed string, got %q", got)
	}
	if got := cellFloat(row, 1); got != 12500 {
		t.Errorf("expected 12500, got %v", got)
	}
	if got := cellFloat(row, 2); got != 0 {
		// Thousands separators are not parsed; the reconciler repairs such rows.
		t.Errorf("expected 0 for unparseable number, got %v", got)
	}
	if !cellBool(row, 3) || !cellBool(row, 4) {
		t.Errorf("expected native and textual booleans to read true")
	}
	if got := cellString(row, 5); got != "" {
		t.Errorf("expected empty string for nil cell, got %q", got)
	}
	if got := cellFloat(row, 99); got != 0 {
		t.Errorf("expected 0 past row end, got %v", got)
	}
}

func TestCellTimeFormats(t *testing.T) {
	stamp := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	row := []interface{}{stamp.Format(time.RFC3339), "2026-08-28", "not a date"}

	if got := cellTime(row, 0); !got.Equal(stamp) {
		t.Errorf("expected %v, got %v", stamp, got)
	}
	if got := cellTime(row, 1); got.Format(dateLayout) != "2026-08-28" {
		t.Errorf("expected date-only parse, got %v", got)
	}
	if got := cellTime(row, 2); !got.IsZero() {
		t.Errorf("expected zero time for garbage, got %v", got)
	}
}

func TestOrderRowRoundTrip(t *testing.T) {
	order := model.Order{
		ID:             "ORD-01J8ZX",
		ClientID:       "CLI-01J8ZY",
		ClientName:     "Aziz Karimov",
		OrderDate:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Status:         model.OrderStatusOpen,
		Discount:       model.Discount{Type: model.DiscountPercent, Value: 10},
		ItemsTotal:     50000,
		DiscountAmount: 5000,
		OrderTotal:     45000,
		TotalPaid:      20000,
		BalanceDue:     25000,
		Comment:        "urgent",
		CreatedBy:      "998001122",
		CreatedAt:      time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 8, 28, 9, 5, 0, 0, time.UTC),
	}

	decoded := decodeOrder(encodeOrder(order))

	if decoded.ID != order.ID || decoded.ClientID != order.ClientID || decoded.ClientName != order.ClientName {
		t.Fatalf("identity fields lost: %+v", decoded)
	}
	if decoded.Status != order.Status || decoded.Discount != order.Discount {
		t.Fatalf("status or discount lost: %+v", decoded)
	}
	if decoded.ItemsTotal != order.ItemsTotal ||
		decoded.DiscountAmount != order.DiscountAmount ||
		decoded.OrderTotal != order.OrderTotal ||
		decoded.TotalPaid != order.TotalPaid ||
		decoded.BalanceDue != order.BalanceDue {
		t.Fatalf("derived fields lost: %+v", decoded)
	}
	if !decoded.OrderDate.Equal(order.OrderDate) {
		t.Fatalf("expected order date %v, got %v", order.OrderDate, decoded.OrderDate)
	}
	if !decoded.UpdatedAt.Equal(order.UpdatedAt) {
		t.Fatalf("expected updated at %v, got %v", order.UpdatedAt, decoded.UpdatedAt)
	}
}

func TestNewIDUsesPrefix(t *testing.T) {
	id := newID(prefixOrder)
	if len(id) != len(prefixOrder)+1+26 {
		t.Fatalf("unexpected id length: %q", id)
	}
	if id[:4] != "ORD-" {
		t.Fatalf("expected ORD- prefix, got %q", id)
	}
	if other := newID(prefixOrder); other == id {
		t.Fatalf("expected unique ids, got duplicate %q", id)
	}
}
