package sheets

import (
	"context"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

func encodeOrder(order model.Order) []interface{} {
	return []interface{}{
		order.ID,
		order.ClientID,
		order.ClientName,
		formatDate(order.OrderDate),
		string(order.Status),
		string(order.Discount.Type),
		order.Discount.Value,
		order.ItemsTotal,
		order.DiscountAmount,
		order.OrderTotal,
		order.TotalPaid,
		order.BalanceDue,
		order.Comment,
		order.CreatedBy,
		formatTime(order.CreatedAt),
		formatTime(order.UpdatedAt),
	}
}

func decodeOrder(row []interface{}) model.Order {
	return model.Order{
		ID:         cellString(row, 0),
		ClientID:   cellString(row, 1),
		ClientName: cellString(row, 2),
		OrderDate:  cellTime(row, 3),
		Status:     model.OrderStatus(cellString(row, 4)),
		Discount: model.Discount{
			Type:  model.DiscountType(cellString(row, 5)),
			Value: cellFloat(row, 6),
		},
		ItemsTotal:     cellFloat(row, 7),
		DiscountAmount: cellFloat(row, 8),
		OrderTotal:     cellFloat(row, 9),
		TotalPaid:      cellFloat(row, 10),
		BalanceDue:     cellFloat(row, 11),
		Comment:        cellString(row, 12),
		CreatedBy:      cellString(row, 13),
		CreatedAt:      cellTime(row, 14),
		UpdatedAt:      cellTime(row, 15),
	}
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	now := time.Now()
	order.ID = newID(prefixOrder)
	order.CreatedAt = now
	order.UpdatedAt = now
	if err := r.storage.appendRow(ctx, tabOrders, encodeOrder(order)); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	_, row, found, err := r.storage.findRow(ctx, tabOrders, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	order := decodeOrder(row)
	return &order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, func(model.Order) bool { return true })
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.list(ctx, func(o model.Order) bool { return o.Status == status })
}

func (r *orderRepository) ListByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return r.list(ctx, func(o model.Order) bool { return o.ClientID == clientID })
}

func (r *orderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	return r.list(ctx, func(o model.Order) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	})
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabOrders, order.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	order.UpdatedAt = time.Now()
	return r.storage.updateRow(ctx, tabOrders, rowNum, encodeOrder(*order))
}

func (r *orderRepository) list(ctx context.Context, keep func(model.Order) bool) ([]model.Order, error) {
	rows, err := r.storage.allRows(ctx, tabOrders)
	if err != nil {
		return nil, err
	}
	var result []model.Order
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		order := decodeOrder(row)
		if keep(order) {
			result = append(result, order)
		}
	}
	return result, nil
}
