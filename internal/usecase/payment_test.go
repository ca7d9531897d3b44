package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

func TestPaymentCreateRecalculatesOrder(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountNone})

	payment, err := f.paymentUC.Create(context.Background(), order.ID, 20000, time.Now(), model.PaymentCash, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount != 20000 || payment.OrderID != order.ID {
		t.Fatalf("unexpected payment %+v", payment)
	}

	reloaded, err := f.orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TotalPaid != 20000 {
		t.Fatalf("expected total paid 20000, got %v", reloaded.TotalPaid)
	}
	if reloaded.BalanceDue != 30000 {
		t.Fatalf("expected balance due 30000, got %v", reloaded.BalanceDue)
	}
	if reloaded.Status != model.OrderStatusOpen {
		t.Fatalf("expected OPEN, got %s", reloaded.Status)
	}

	if _, err := f.paymentUC.Create(context.Background(), order.ID, 30000, time.Now(), model.PaymentCard, "tester"); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	reloaded, _ = f.orders.GetByID(context.Background(), order.ID)
	if reloaded.Status != model.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED once paid in full, got %s", reloaded.Status)
	}
	if reloaded.BalanceDue != 0 {
		t.Fatalf("expected zero balance, got %v", reloaded.BalanceDue)
	}
}

func TestPaymentOverpaymentAccepted(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 10}},
		model.Discount{Type: model.DiscountPercent, Value: 10})

	if _, err := f.paymentUC.Create(context.Background(), order.ID, 50000, time.Now(), model.PaymentTransfer, "tester"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, _ := f.orders.GetByID(context.Background(), order.ID)
	if reloaded.OrderTotal != 45000 {
		t.Fatalf("expected order total 45000, got %v", reloaded.OrderTotal)
	}
	if reloaded.BalanceDue != -5000 {
		t.Fatalf("expected negative balance -5000, got %v", reloaded.BalanceDue)
	}
	if reloaded.Status != model.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", reloaded.Status)
	}
}

func TestPaymentCreateRejectsNonPositive(t *testing.T) {
	f := newFixture()
	if _, err := f.paymentUC.Create(context.Background(), "ORD-1", 0, time.Now(), model.PaymentCash, "tester"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := f.paymentUC.Create(context.Background(), "ORD-1", -100, time.Now(), model.PaymentCash, "tester"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestPaymentDeleteReopensOrder(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 2}},
		model.Discount{Type: model.DiscountNone})

	payment, err := f.paymentUC.Create(context.Background(), order.ID, 10000, time.Now(), model.PaymentCash, "tester")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if reloaded, _ := f.orders.GetByID(context.Background(), order.ID); reloaded.Status != model.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED before delete, got %s", reloaded.Status)
	}

	deleted, err := f.paymentUC.Delete(context.Background(), payment.ID, "tester")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete to report true")
	}

	reloaded, _ := f.orders.GetByID(context.Background(), order.ID)
	if reloaded.Status != model.OrderStatusOpen {
		t.Fatalf("expected order reopened, got %s", reloaded.Status)
	}
	if reloaded.TotalPaid != 0 || reloaded.BalanceDue != 10000 {
		t.Fatalf("expected paid 0 balance 10000, got %+v", reloaded)
	}
}

func TestPaymentUpdateAdjustsOrder(t *testing.T) {
	f := newFixture()
	client := f.seedClient(t, "Aziz")
	product := f.seedProduct(t, "Rice 1kg", 5000)
	order, _ := f.createOrder(t, client.ID,
		[]usecase.OrderItemInput{{ProductID: product.ID, Qty: 4}},
		model.Discount{Type: model.DiscountNone})

	payment, err := f.paymentUC.Create(context.Background(), order.ID, 5000, time.Now(), model.PaymentCash, "tester")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}

	amount := 20000.0
	method := model.PaymentCard
	updated, err := f.paymentUC.Update(context.Background(), payment.ID, usecase.PaymentUpdate{Amount: &amount, Method: &method}, "tester")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 20000 || updated.Method != model.PaymentCard {
		t.Fatalf("unexpected payment %+v", updated)
	}

	reloaded, _ := f.orders.GetByID(context.Background(), order.ID)
	if reloaded.TotalPaid != 20000 || reloaded.Status != model.OrderStatusCompleted {
		t.Fatalf("expected paid 20000 COMPLETED, got %+v", reloaded)
	}
}

func TestPaymentMissingTargetsAreSilent(t *testing.T) {
	f := newFixture()

	updated, err := f.paymentUC.Update(context.Background(), "PAY-404", usecase.PaymentUpdate{}, "tester")
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil payment for missing id")
	}

	deleted, err := f.paymentUC.Delete(context.Background(), "PAY-404", "tester")
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if deleted {
		t.Fatalf("expected false for missing id")
	}

	if _, err := f.paymentUC.GetByID(context.Background(), "PAY-404"); !errors.Is(err, domainErrors.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestPaymentWithoutOrderSkipsRecalculation(t *testing.T) {
	f := newFixture()

	payment, err := f.paymentUC.Create(context.Background(), "", 7000, time.Now(), model.PaymentCash, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.OrderID != "" {
		t.Fatalf("expected unattached payment, got %+v", payment)
	}
	if f.orders.UpdateCalls != 0 {
		t.Fatalf("expected no order rewrites, got %d", f.orders.UpdateCalls)
	}
}
