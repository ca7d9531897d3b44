package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// PaymentRepository stores payments applied toward orders.
type PaymentRepository interface {
	Create(ctx context.Context, payment model.Payment) (*model.Payment, error)
	GetByID(ctx context.Context, paymentID string) (*model.Payment, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error)
	TotalPaidForOrder(ctx context.Context, orderID string) (float64, error)
	Update(ctx context.Context, payment *model.Payment) error
	SoftDelete(ctx context.Context, paymentID string) error
}
