package repository

import (
	"context"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Orders are never physically deleted, only status-transitioned.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Order, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
}
