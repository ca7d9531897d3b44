package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
	"github.com/dokonbot/dokonbot/internal/lock"
)

// PaymentUpdate carries optional field changes for a payment.
type PaymentUpdate struct {
	Amount *float64
	Method *model.PaymentMethod
}

// PaymentUseCase manages payments. Every mutation triggers full
// recalculation of the referenced order.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   *OrderUseCase
	locks    lock.Locker
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, orders *OrderUseCase, locks lock.Locker) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, orders: orders, locks: locks}
}

// Create persists a payment and recalculates the referenced order.
// The amount is not capped by the order's balance due: overpayment is
// accepted and surfaced informationally, never rejected here.
func (u *PaymentUseCase) Create(ctx context.Context, orderID string, amount float64, paymentDate time.Time, method model.PaymentMethod, actor string) (*model.Payment, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	payment, err := u.payments.Create(ctx, model.Payment{
		OrderID:     orderID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Method:      method,
		CreatedBy:   actor,
	})
	if err != nil {
		return nil, err
	}

	if orderID != "" {
		if err := u.recalculateOrder(ctx, orderID); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// Update applies the provided field changes. Returns nil without error when
// the payment does not exist.
func (u *PaymentUseCase) Update(ctx context.Context, paymentID string, changes PaymentUpdate, actor string) (*model.Payment, error) {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if changes.Amount != nil {
		if err := ValidateAmount(*changes.Amount); err != nil {
			return nil, err
		}
		payment.Amount = *changes.Amount
	}
	if changes.Method != nil {
		payment.Method = *changes.Method
	}

	if err := u.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	if payment.OrderID != "" {
		if err := u.recalculateOrder(ctx, payment.OrderID); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// Delete soft-deletes a payment and recalculates its order. Returns false
// without error when the payment does not exist.
func (u *PaymentUseCase) Delete(ctx context.Context, paymentID, actor string) (bool, error) {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := u.payments.SoftDelete(ctx, paymentID); err != nil {
		return false, err
	}

	if payment.OrderID != "" {
		if err := u.recalculateOrder(ctx, payment.OrderID); err != nil {
			return false, err
		}
	}

	return true, nil
}

// GetByID fetches one payment.
func (u *PaymentUseCase) GetByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// ListByOrder returns live payments applied toward one order.
func (u *PaymentUseCase) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	return u.payments.ListByOrder(ctx, orderID)
}

// ListAll returns every live payment.
func (u *PaymentUseCase) ListAll(ctx context.Context) ([]model.Payment, error) {
	return u.payments.ListAll(ctx)
}

func (u *PaymentUseCase) recalculateOrder(ctx context.Context, orderID string) error {
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		_, err := u.orders.recalculate(ctx, orderID)
		return err
	})
	return err
}
