package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// OrderItemRepository stores order lines. SoftDelete blanks the row but keeps
// its slot; blanked rows are excluded from all reads.
type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (*model.OrderItem, error)
	GetByID(ctx context.Context, itemID string) (*model.OrderItem, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.OrderItem, error)
	Update(ctx context.Context, item *model.OrderItem) error
	SoftDelete(ctx context.Context, itemID string) error
}
