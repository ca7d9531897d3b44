package sheets

import (
	"context"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

func encodePayment(payment model.Payment) []interface{} {
	return []interface{}{
		payment.ID,
		payment.OrderID,
		payment.Amount,
		formatDate(payment.PaymentDate),
		string(payment.Method),
		payment.CreatedBy,
		formatTime(payment.CreatedAt),
	}
}

func decodePayment(row []interface{}) model.Payment {
	return model.Payment{
		ID:          cellString(row, 0),
		OrderID:     cellString(row, 1),
		Amount:      cellFloat(row, 2),
		PaymentDate: cellTime(row, 3),
		Method:      model.PaymentMethod(cellString(row, 4)),
		CreatedBy:   cellString(row, 5),
		CreatedAt:   cellTime(row, 6),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	payment.ID = newID(prefixPayment)
	payment.CreatedAt = time.Now()
	if err := r.storage.appendRow(ctx, tabPayments, encodePayment(payment)); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	_, row, found, err := r.storage.findRow(ctx, tabPayments, paymentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	payment := decodePayment(row)
	return &payment, nil
}

func (r *paymentRepository) ListAll(ctx context.Context) ([]model.Payment, error) {
	return r.list(ctx, func(model.Payment) bool { return true })
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	return r.list(ctx, func(p model.Payment) bool { return p.OrderID == orderID })
}

func (r *paymentRepository) TotalPaidForOrder(ctx context.Context, orderID string) (float64, error) {
	payments, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, payment := range payments {
		total += payment.Amount
	}
	return total, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabPayments, payment.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return r.storage.updateRow(ctx, tabPayments, rowNum, encodePayment(*payment))
}

func (r *paymentRepository) SoftDelete(ctx context.Context, paymentID string) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabPayments, paymentID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return r.storage.blankRow(ctx, tabPayments, rowNum)
}

func (r *paymentRepository) list(ctx context.Context, keep func(model.Payment) bool) ([]model.Payment, error) {
	rows, err := r.storage.allRows(ctx, tabPayments)
	if err != nil {
		return nil, err
	}
	var result []model.Payment
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		payment := decodePayment(row)
		if keep(payment) {
			result = append(result, payment)
		}
	}
	return result, nil
}
