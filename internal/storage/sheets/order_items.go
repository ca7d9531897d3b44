package sheets

import (
	"context"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type orderItemRepository struct {
	storage *Storage
}

func encodeOrderItem(item model.OrderItem) []interface{} {
	return []interface{}{
		item.ID,
		item.OrderID,
		item.ProductID,
		item.ProductName,
		item.Qty,
		item.UnitPrice,
		item.Subtotal,
	}
}

func decodeOrderItem(row []interface{}) model.OrderItem {
	return model.OrderItem{
		ID:          cellString(row, 0),
		OrderID:     cellString(row, 1),
		ProductID:   cellString(row, 2),
		ProductName: cellString(row, 3),
		Qty:         cellFloat(row, 4),
		UnitPrice:   cellFloat(row, 5),
		Subtotal:    cellFloat(row, 6),
	}
}

func (r *orderItemRepository) Create(ctx context.Context, item model.OrderItem) (*model.OrderItem, error) {
	item.ID = newID(prefixOrderItem)
	if err := r.storage.appendRow(ctx, tabOrderItems, encodeOrderItem(item)); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) GetByID(ctx context.Context, itemID string) (*model.OrderItem, error) {
	_, row, found, err := r.storage.findRow(ctx, tabOrderItems, itemID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	item := decodeOrderItem(row)
	return &item, nil
}

func (r *orderItemRepository) ListByOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.storage.allRows(ctx, tabOrderItems)
	if err != nil {
		return nil, err
	}
	var result []model.OrderItem
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		item := decodeOrderItem(row)
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *orderItemRepository) Update(ctx context.Context, item *model.OrderItem) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabOrderItems, item.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return r.storage.updateRow(ctx, tabOrderItems, rowNum, encodeOrderItem(*item))
}

func (r *orderItemRepository) SoftDelete(ctx context.Context, itemID string) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabOrderItems, itemID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	return r.storage.blankRow(ctx, tabOrderItems, rowNum)
}
