package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

func newQueryFixture(t *testing.T) (*fixture, *usecase.QueryUseCase) {
	t.Helper()
	f := newFixture()
	return f, usecase.NewQueryUseCase(f.orders, f.clients)
}

func TestClientsWithOpenOrders(t *testing.T) {
	f, q := newQueryFixture(t)
	debtor := f.seedClient(t, "Aziz")
	settled := f.seedClient(t, "Bobur")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	f.createOrder(t, debtor.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 2}}, model.Discount{Type: model.DiscountNone})
	f.createOrder(t, debtor.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 3}}, model.Discount{Type: model.DiscountNone})

	paid, _ := f.createOrder(t, settled.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}}, model.Discount{Type: model.DiscountNone})
	if _, err := f.paymentUC.Create(context.Background(), paid.ID, 5000, time.Now(), model.PaymentCash, "tester"); err != nil {
		t.Fatalf("pay: %v", err)
	}

	result, err := q.ClientsWithOpenOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 client with open orders, got %d", len(result))
	}
	if result[0].Client.ID != debtor.ID {
		t.Fatalf("expected client %s, got %s", debtor.ID, result[0].Client.ID)
	}
	if len(result[0].OpenOrders) != 2 {
		t.Fatalf("expected 2 open orders, got %d", len(result[0].OpenOrders))
	}
	if result[0].TotalOpenBalance != 25000 {
		t.Fatalf("expected open balance 25000, got %v", result[0].TotalOpenBalance)
	}
}

func TestClientsWithDebt(t *testing.T) {
	f, q := newQueryFixture(t)
	debtor := f.seedClient(t, "Aziz")
	clean := f.seedClient(t, "Bobur")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	f.createOrder(t, debtor.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 4}}, model.Discount{Type: model.DiscountNone})

	result, err := q.ClientsWithDebt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected both clients listed, got %d", len(result))
	}
	debts := make(map[string]float64)
	for _, entry := range result {
		debts[entry.Client.ID] = entry.TotalDebt
	}
	if debts[debtor.ID] != 20000 {
		t.Fatalf("expected debt 20000, got %v", debts[debtor.ID])
	}
	if debts[clean.ID] != 0 {
		t.Fatalf("expected zero debt, got %v", debts[clean.ID])
	}
}

func TestSearchOrders(t *testing.T) {
	f, q := newQueryFixture(t)
	client := f.seedClient(t, "Aziz Karimov")
	other := f.seedClient(t, "Bobur")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	first, _ := f.createOrder(t, client.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}}, model.Discount{Type: model.DiscountNone})
	f.createOrder(t, other.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}}, model.Discount{Type: model.DiscountNone})

	t.Run("too short", func(t *testing.T) {
		found, err := q.SearchOrders(context.Background(), "a", usecase.SortNewestUpdated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Fatalf("expected no results for single-character query")
		}
	})

	t.Run("by id", func(t *testing.T) {
		found, err := q.SearchOrders(context.Background(), first.ID, usecase.SortNewestUpdated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 || found[0].ID != first.ID {
			t.Fatalf("expected exact id match, got %+v", found)
		}
	})

	t.Run("by client name", func(t *testing.T) {
		found, err := q.SearchOrders(context.Background(), "karim", usecase.SortNewestUpdated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 || found[0].ClientID != client.ID {
			t.Fatalf("expected one order for Karimov, got %+v", found)
		}
	})

	t.Run("by date", func(t *testing.T) {
		date := first.OrderDate.Format("2006-01-02")
		found, err := q.SearchOrders(context.Background(), date, usecase.SortNewestUpdated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 2 {
			t.Fatalf("expected both orders dated today, got %d", len(found))
		}
	})
}

func TestSortOrders(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	orders := []model.Order{
		{ID: "ORD-1", OrderDate: day(1), UpdatedAt: day(3), BalanceDue: 100},
		{ID: "ORD-2", OrderDate: day(2), UpdatedAt: day(1), BalanceDue: 300},
		{ID: "ORD-3", OrderDate: day(3), UpdatedAt: day(2), BalanceDue: 200},
	}

	cases := []struct {
		sort usecase.OrderSort
		want []string
	}{
		{usecase.SortNewestUpdated, []string{"ORD-1", "ORD-3", "ORD-2"}},
		{usecase.SortLargestBalance, []string{"ORD-2", "ORD-3", "ORD-1"}},
		{usecase.SortByDate, []string{"ORD-3", "ORD-2", "ORD-1"}},
		{usecase.SortOldestDate, []string{"ORD-1", "ORD-2", "ORD-3"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.sort), func(t *testing.T) {
			sorted := make([]model.Order, len(orders))
			copy(sorted, orders)
			usecase.SortOrders(sorted, tc.sort)
			for i, id := range tc.want {
				if sorted[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, sorted[i].ID)
				}
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := usecase.Paginate(items, 0, 2)
	if len(page.Items) != 2 || page.Items[0] != 1 {
		t.Fatalf("unexpected first page %+v", page)
	}
	if page.TotalPages != 3 || page.HasPrev || !page.HasNext {
		t.Fatalf("unexpected first page meta %+v", page)
	}

	page = usecase.Paginate(items, 2, 2)
	if len(page.Items) != 1 || page.Items[0] != 5 {
		t.Fatalf("unexpected last page %+v", page)
	}
	if page.HasNext || !page.HasPrev {
		t.Fatalf("unexpected last page meta %+v", page)
	}

	page = usecase.Paginate(items, 9, 2)
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", page.Items)
	}
}
