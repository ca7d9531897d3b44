package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/lock"
	"github.com/dokonbot/dokonbot/internal/test"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

type fixture struct {
	orders    *test.OrderRepositoryStub
	items     *test.OrderItemRepositoryStub
	payments  *test.PaymentRepositoryStub
	products  *test.ProductRepositoryStub
	clients   *test.ClientRepositoryStub
	audit     *test.AuditRepositoryStub
	lockStore *lock.MemoryStore

	orderUC   *usecase.OrderUseCase
	paymentUC *usecase.PaymentUseCase
}

func newFixture() *fixture {
	f := &fixture{
		orders:    test.NewOrderRepositoryStub(),
		items:     test.NewOrderItemRepositoryStub(),
		payments:  test.NewPaymentRepositoryStub(),
		products:  test.NewProductRepositoryStub(),
		clients:   test.NewClientRepositoryStub(),
		audit:     &test.AuditRepositoryStub{},
		lockStore: lock.NewMemoryStore(),
	}
	locker := lock.NewManager(f.lockStore, "test-instance", time.Second, 1, 0)
	f.orderUC = usecase.NewOrderUseCase(f.orders, f.items, f.payments, f.products, f.clients, f.audit, locker)
	f.paymentUC = usecase.NewPaymentUseCase(f.payments, f.orderUC, locker)
	return f
}

func (f *fixture) seedClient(t *testing.T, name string) *model.Client {
	t.Helper()
	client, err := f.clients.Create(context.Background(), model.Client{Name: name, Active: true})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func (f *fixture) seedProduct(t *testing.T, name string, price float64) *model.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), model.Product{Name: name, DefaultPrice: price, Active: true})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func (f *fixture) createOrder(t *testing.T, clientID string, inputs []usecase.OrderItemInput, discount model.Discount) (*model.Order, []model.OrderItem) {
	t.Helper()
	order, items, err := f.orderUC.Create(context.Background(), clientID, time.Now(), inputs, discount, "tester")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order, items
}

func TestOrderCreatePercentDiscount(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	order, items, err := f.orderUC.Create(context.Background(), client.ID, time.Now(),
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountPercent, Value: 10}, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Subtotal != 50000 {
		t.Fatalf("expected line subtotal 50000, got %v", items[0].Subtotal)
	}
	if order.ItemsTotal != 50000 {
		t.Fatalf("expected items total 50000, got %v", order.ItemsTotal)
	}
	if order.DiscountAmount != 5000 {
		t.Fatalf("expected discount amount 5000, got %v", order.DiscountAmount)
	}
	if order.OrderTotal != 45000 {
		t.Fatalf("expected order total 45000, got %v", order.OrderTotal)
	}
	if order.BalanceDue != 45000 {
		t.Fatalf("expected balance due 45000, got %v", order.BalanceDue)
	}
	if order.Status != model.OrderStatusOpen {
		t.Fatalf("expected OPEN status, got %s", order.Status)
	}
	if order.ClientName != client.Name {
		t.Fatalf("expected client name snapshot %q, got %q", client.Name, order.ClientName)
	}
	if len(f.audit.Records) != 1 || f.audit.Records[0].Action != model.AuditCreate {
		t.Fatalf("expected one CREATE audit record, got %+v", f.audit.Records)
	}
}

func TestOrderCreatePriceOverride(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	override := 4500.0
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 2, UnitPrice: &override}},
		model.Discount{Type: model.DiscountNone})

	if items[0].UnitPrice != 4500 {
		t.Fatalf("expected overridden unit price 4500, got %v", items[0].UnitPrice)
	}
	if order.OrderTotal != 9000 {
		t.Fatalf("expected order total 9000, got %v", order.OrderTotal)
	}
}

func TestOrderCreateRejections(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	inactive := f.seedProduct(t, "Old flour", 3000)
	inactiveFlag := false
	if _, err := f.products.GetByID(context.Background(), inactive.ID); err != nil {
		t.Fatalf("seed: %v", err)
	}
	inactive.Active = inactiveFlag
	if err := f.products.Update(context.Background(), inactive); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx := context.Background()
	none := model.Discount{Type: model.DiscountNone}

	cases := []struct {
		name     string
		clientID string
		inputs   []usecase.OrderItemInput
		discount model.Discount
		want     error
	}{
		{"empty order", client.ID, nil, none, domainErrors.ErrEmptyOrder},
		{"unknown client", "CLI-999", []usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}}, none, domainErrors.ErrClientNotFound},
		{"unknown product", client.ID, []usecase.OrderItemInput{{ProductID: "PRD-999", Qty: 1}}, none, domainErrors.ErrProductNotFound},
		{"inactive product", client.ID, []usecase.OrderItemInput{{ProductID: inactive.ID, Qty: 1}}, none, domainErrors.ErrProductInactive},
		{"zero qty", client.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 0}}, none, domainErrors.ErrInvalidQty},
		{"negative percent", client.ID, []usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}}, model.Discount{Type: model.DiscountPercent, Value: -5}, domainErrors.ErrInvalidDiscount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.orderUC.Create(ctx, tc.clientID, time.Now(), tc.inputs, tc.discount, "tester")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateItemQtyRecalculates(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountNone})

	updated, err := f.orderUC.UpdateItemQty(context.Background(), order.ID, items[0].ID, 5, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ItemsTotal != 25000 {
		t.Fatalf("expected items total 25000, got %v", updated.ItemsTotal)
	}
	if updated.OrderTotal != 25000 {
		t.Fatalf("expected order total 25000, got %v", updated.OrderTotal)
	}
	if updated.BalanceDue != 25000 {
		t.Fatalf("expected balance due 25000, got %v", updated.BalanceDue)
	}

	item, err := f.items.GetByID(context.Background(), items[0].ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.Qty != 5 || item.Subtotal != 25000 {
		t.Fatalf("expected qty 5 subtotal 25000, got qty %v subtotal %v", item.Qty, item.Subtotal)
	}
}

func TestUpdateItemQtyNoopWhenEqual(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 3}},
		model.Discount{Type: model.DiscountNone})

	updatesBefore := f.orders.UpdateCalls
	updated, err := f.orderUC.UpdateItemQty(context.Background(), order.ID, items[0].ID, 3, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.OrderTotal != order.OrderTotal {
		t.Fatalf("expected unchanged order total, got %v", updated.OrderTotal)
	}
	if f.orders.UpdateCalls != updatesBefore {
		t.Fatalf("expected no order rewrite on equal quantity")
	}
}

func TestUpdateItemQtyUnknownItem(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 3}},
		model.Discount{Type: model.DiscountNone})

	_, err := f.orderUC.UpdateItemQty(context.Background(), order.ID, "OITM-999", 2, "tester")
	if !errors.Is(err, domainErrors.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}

func TestDeleteLastItemZeroesAndCompletes(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 2}},
		model.Discount{Type: model.DiscountNone})

	updated, err := f.orderUC.DeleteItem(context.Background(), order.ID, items[0].ID, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ItemsTotal != 0 || updated.OrderTotal != 0 || updated.BalanceDue != 0 {
		t.Fatalf("expected zero totals, got %+v", updated)
	}
	if updated.Status != model.OrderStatusCompleted {
		t.Fatalf("expected zero-total order COMPLETED, got %s", updated.Status)
	}
}

func TestCancelIsTerminalForEdits(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountNone})

	cancelled, err := f.orderUC.Cancel(context.Background(), order.ID, "tester")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.OrderTotal != order.OrderTotal || cancelled.BalanceDue != order.BalanceDue {
		t.Fatalf("cancel must not touch totals: %+v", cancelled)
	}

	if _, err := f.orderUC.UpdateItemQty(context.Background(), order.ID, items[0].ID, 5, "tester"); !errors.Is(err, domainErrors.ErrCannotEditCancelled) {
		t.Fatalf("expected ErrCannotEditCancelled, got %v", err)
	}
	if _, err := f.orderUC.DeleteItem(context.Background(), order.ID, items[0].ID, "tester"); !errors.Is(err, domainErrors.ErrCannotEditCancelled) {
		t.Fatalf("expected ErrCannotEditCancelled, got %v", err)
	}
	if _, err := f.orderUC.UpdateDiscount(context.Background(), order.ID, model.Discount{Type: model.DiscountPercent, Value: 5}, "tester"); !errors.Is(err, domainErrors.ErrCannotEditCancelled) {
		t.Fatalf("expected ErrCannotEditCancelled, got %v", err)
	}
	if _, err := f.orderUC.Cancel(context.Background(), order.ID, "tester"); !errors.Is(err, domainErrors.ErrOrderAlreadyCancelled) {
		t.Fatalf("expected ErrOrderAlreadyCancelled, got %v", err)
	}

	reloaded, err := f.orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.OrderTotal != order.OrderTotal || reloaded.ItemsTotal != order.ItemsTotal {
		t.Fatalf("totals changed after rejected edits: %+v", reloaded)
	}
}

func TestRestoreOnlyFromCompleted(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 2}},
		model.Discount{Type: model.DiscountNone})

	if _, err := f.orderUC.Restore(context.Background(), order.ID, "tester"); !errors.Is(err, domainErrors.ErrCannotRestoreNonCompleted) {
		t.Fatalf("expected ErrCannotRestoreNonCompleted for OPEN order, got %v", err)
	}

	if _, err := f.paymentUC.Create(context.Background(), order.ID, 10000, time.Now(), model.PaymentCash, "tester"); err != nil {
		t.Fatalf("pay in full: %v", err)
	}

	restored, err := f.orderUC.Restore(context.Background(), order.ID, "tester")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Status != model.OrderStatusOpen {
		t.Fatalf("expected OPEN after restore, got %s", restored.Status)
	}
}

func TestUpdateDiscountFixedClampsToSubtotal(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountNone})

	updated, err := f.orderUC.UpdateDiscount(context.Background(), order.ID, model.Discount{Type: model.DiscountFixed, Value: 100000}, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DiscountAmount != 50000 {
		t.Fatalf("expected discount clamped to 50000, got %v", updated.DiscountAmount)
	}
	if updated.OrderTotal != 0 {
		t.Fatalf("expected order total 0, got %v", updated.OrderTotal)
	}
	if updated.Status != model.OrderStatusCompleted {
		t.Fatalf("expected zero-total order COMPLETED, got %s", updated.Status)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountPercent, Value: 10})

	if _, err := f.paymentUC.Create(context.Background(), order.ID, 20000, time.Now(), model.PaymentCard, "tester"); err != nil {
		t.Fatalf("payment: %v", err)
	}

	first, err := f.orderUC.Recalculate(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("first recalculate: %v", err)
	}
	second, err := f.orderUC.Recalculate(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("second recalculate: %v", err)
	}

	if first.ItemsTotal != second.ItemsTotal ||
		first.DiscountAmount != second.DiscountAmount ||
		first.OrderTotal != second.OrderTotal ||
		first.TotalPaid != second.TotalPaid ||
		first.BalanceDue != second.BalanceDue ||
		first.Status != second.Status {
		t.Fatalf("recalculation not idempotent: %+v vs %+v", first, second)
	}
}

func TestReconcileOrderDetectsDrift(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountNone})

	changed, err := f.orderUC.ReconcileOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reconcile clean: %v", err)
	}
	if changed {
		t.Fatalf("expected no rewrite on clean order")
	}

	// Simulate a stale snapshot as left behind by a partially failed mutation.
	stored := f.orders.Orders[order.ID]
	stored.OrderTotal = 1
	stored.BalanceDue = 1

	changed, err = f.orderUC.ReconcileOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reconcile drifted: %v", err)
	}
	if !changed {
		t.Fatalf("expected rewrite on drifted order")
	}

	reloaded, err := f.orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.OrderTotal != 50000 || reloaded.BalanceDue != 50000 {
		t.Fatalf("expected snapshot repaired to 50000, got %+v", reloaded)
	}
}

func TestMutationFailsWhenLeaseHeld(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, items := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 2}},
		model.Discount{Type: model.DiscountNone})

	err := f.lockStore.Save(context.Background(), lock.Lease{
		Key:       "order:" + order.ID,
		Owner:     "someone-else",
		ExpiresAt: time.Now().Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("hold lease: %v", err)
	}

	if _, err := f.orderUC.UpdateItemQty(context.Background(), order.ID, items[0].ID, 1, "tester"); !errors.Is(err, domainErrors.ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
}

func TestRecentCompleted(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)

	for i := 0; i < 3; i++ {
		order, _ := f.createOrder(t, client.ID,
			[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}},
			model.Discount{Type: model.DiscountNone})
		if _, err := f.paymentUC.Create(context.Background(), order.ID, 5000, time.Now(), model.PaymentCash, "tester"); err != nil {
			t.Fatalf("pay: %v", err)
		}
	}

	completed, err := f.orderUC.RecentCompleted(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(completed))
	}
	for _, order := range completed {
		if order.Status != model.OrderStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s", order.Status)
		}
	}
}

type wrappingClientRepo struct {
	*test.ClientRepositoryStub
}

func (w wrappingClientRepo) GetByID(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := w.ClientRepositoryStub.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("clients sheet: %w", err)
	}
	return client, nil
}

func TestCreateClassifiesWrappedClientLookup(t *testing.T) {
	f := newFixture()
	product := f.seedProduct(t, "Rice 1kg", 5000)

	locker := lock.NewManager(f.lockStore, "test-instance", time.Second, 1, 0)
	uc := usecase.NewOrderUseCase(f.orders, f.items, f.payments, f.products, wrappingClientRepo{f.clients}, f.audit, locker)

	_, _, err := uc.Create(context.Background(), "CLI-missing", time.Now(),
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 1}},
		model.Discount{Type: model.DiscountNone}, "tester")
	if !errors.Is(err, domainErrors.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound for wrapped lookup error, got %v", err)
	}
}
