package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/calc"
	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
	"github.com/dokonbot/dokonbot/internal/lock"
)

// OrderItemInput describes one requested line for order creation.
// UnitPrice overrides the product default price when set.
type OrderItemInput struct {
	ProductID string
	Qty       float64
	UnitPrice *float64
}

// OrderUseCase holds the order lifecycle and total-recalculation rules.
// Mutations against an existing order are serialized by a per-order lease.
type OrderUseCase struct {
	orders   repository.OrderRepository
	items    repository.OrderItemRepository
	payments repository.PaymentRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	audit    repository.AuditRepository
	locks    lock.Locker
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	items repository.OrderItemRepository,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	audit repository.AuditRepository,
	locks lock.Locker,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		items:    items,
		payments: payments,
		products: products,
		clients:  clients,
		audit:    audit,
		locks:    locks,
	}
}

// Create validates the client and every product, resolves unit prices,
// computes totals against zero paid, and persists the order with its lines.
func (u *OrderUseCase) Create(ctx context.Context, clientID string, orderDate time.Time, inputs []OrderItemInput, discount model.Discount, actor string) (*model.Order, []model.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, nil, domainErrors.ErrEmptyOrder
	}
	if err := ValidateDiscount(discount); err != nil {
		return nil, nil, err
	}

	client, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, domainErrors.ErrClientNotFound
		}
		return nil, nil, err
	}

	lines := make([]model.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if err := ValidateQty(in.Qty); err != nil {
			return nil, nil, err
		}

		product, err := u.products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, nil, domainErrors.ErrProductNotFound
			}
			return nil, nil, err
		}
		if !product.Active {
			return nil, nil, domainErrors.ErrProductInactive
		}

		unitPrice := product.DefaultPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		lines = append(lines, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Qty:         in.Qty,
			UnitPrice:   unitPrice,
			Subtotal:    calc.LineSubtotal(in.Qty, unitPrice),
		})
	}

	totals := calc.OrderTotals(lines, discount, 0)

	order, err := u.orders.Create(ctx, model.Order{
		ClientID:       clientID,
		ClientName:     client.Name,
		OrderDate:      orderDate,
		Status:         model.OrderStatusOpen,
		Discount:       discount,
		ItemsTotal:     totals.ItemsTotal,
		DiscountAmount: totals.DiscountAmount,
		OrderTotal:     totals.OrderTotal,
		TotalPaid:      0,
		BalanceDue:     totals.OrderTotal,
		CreatedBy:      actor,
	})
	if err != nil {
		return nil, nil, err
	}

	saved := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		line.OrderID = order.ID
		item, err := u.items.Create(ctx, line)
		if err != nil {
			return nil, nil, err
		}
		saved = append(saved, *item)
	}

	if err := u.writeAudit(ctx, model.AuditEntityOrder, order.ID, model.AuditCreate, actor, nil, order); err != nil {
		return nil, nil, err
	}

	return order, saved, nil
}

// GetWithItems loads an order together with its live lines.
func (u *OrderUseCase) GetWithItems(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error) {
	order, err := u.getOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := u.items.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// UpdateDiscount replaces the discount specification and recomputes every
// derived field against the existing items. Items are not touched.
func (u *OrderUseCase) UpdateDiscount(ctx context.Context, orderID string, discount model.Discount, actor string) (*model.Order, error) {
	if err := ValidateDiscount(discount); err != nil {
		return nil, err
	}

	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		before, items, err := u.GetWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if before.Status == model.OrderStatusCancelled {
			return domainErrors.ErrCannotEditCancelled
		}

		totalPaid, err := u.payments.TotalPaidForOrder(ctx, orderID)
		if err != nil {
			return err
		}

		totals := calc.OrderTotals(items, discount, totalPaid)

		order := *before
		order.Discount = discount
		order.ItemsTotal = totals.ItemsTotal
		order.DiscountAmount = totals.DiscountAmount
		order.OrderTotal = totals.OrderTotal
		order.TotalPaid = totalPaid
		order.BalanceDue = totals.BalanceDue
		order.Status = calc.ResolveStatus(totals.OrderTotal, totalPaid, before.Status)

		if err := u.orders.Update(ctx, &order); err != nil {
			return err
		}
		if err := u.writeAudit(ctx, model.AuditEntityOrder, orderID, model.AuditUpdate, actor, before, &order); err != nil {
			return err
		}
		updated = &order
		return nil
	})
	return updated, err
}

// Cancel marks the order CANCELLED. Totals are left untouched.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, actor string) (*model.Order, error) {
	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		before, err := u.getOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if before.Status == model.OrderStatusCancelled {
			return domainErrors.ErrOrderAlreadyCancelled
		}

		order := *before
		order.Status = model.OrderStatusCancelled
		if err := u.orders.Update(ctx, &order); err != nil {
			return err
		}
		if err := u.writeAudit(ctx, model.AuditEntityOrder, orderID, model.AuditCancel, actor, before, &order); err != nil {
			return err
		}
		updated = &order
		return nil
	})
	return updated, err
}

// Restore reopens a COMPLETED order for editing. Cancelled orders stay
// terminal; they cannot be restored through this path.
func (u *OrderUseCase) Restore(ctx context.Context, orderID, actor string) (*model.Order, error) {
	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		before, err := u.getOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if before.Status != model.OrderStatusCompleted {
			return domainErrors.ErrCannotRestoreNonCompleted
		}

		order := *before
		order.Status = model.OrderStatusOpen
		if err := u.orders.Update(ctx, &order); err != nil {
			return err
		}
		if err := u.writeAudit(ctx, model.AuditEntityOrder, orderID, model.AuditRestore, actor, before, &order); err != nil {
			return err
		}
		updated = &order
		return nil
	})
	return updated, err
}

// UpdateItemQty changes one line's quantity, recomputes its subtotal from its
// stored unit price and triggers full order recalculation. Returns the order
// unchanged when the quantity already matches.
func (u *OrderUseCase) UpdateItemQty(ctx context.Context, orderID, itemID string, newQty float64, actor string) (*model.Order, error) {
	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		order, items, err := u.GetWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == model.OrderStatusCancelled {
			return domainErrors.ErrCannotEditCancelled
		}

		item := findItem(items, itemID)
		if item == nil {
			return domainErrors.ErrOrderItemNotFound
		}
		if err := ValidateQty(newQty); err != nil {
			return err
		}

		if newQty == item.Qty {
			updated = order
			return nil
		}

		item.Qty = newQty
		item.Subtotal = calc.LineSubtotal(newQty, item.UnitPrice)
		if err := u.items.Update(ctx, item); err != nil {
			return err
		}

		updated, err = u.recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

// DeleteItem soft-deletes one line and triggers full order recalculation.
// Removing the last line is allowed; the order then totals to zero.
func (u *OrderUseCase) DeleteItem(ctx context.Context, orderID, itemID, actor string) (*model.Order, error) {
	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		order, items, err := u.GetWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == model.OrderStatusCancelled {
			return domainErrors.ErrCannotEditCancelled
		}
		if findItem(items, itemID) == nil {
			return domainErrors.ErrOrderItemNotFound
		}

		if err := u.items.SoftDelete(ctx, itemID); err != nil {
			return err
		}

		updated, err = u.recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

// Recalculate reloads the order's live items and payments and rewrites the
// full derived snapshot. It is the single source of truth invoked after every
// item or payment mutation.
func (u *OrderUseCase) Recalculate(ctx context.Context, orderID string) (*model.Order, error) {
	var updated *model.Order
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		var err error
		updated, err = u.recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

// ReconcileOrder recomputes the order snapshot and persists it only when the
// stored totals drifted from the live items and payments. Reports whether a
// rewrite happened.
func (u *OrderUseCase) ReconcileOrder(ctx context.Context, orderID string) (bool, error) {
	var changed bool
	err := u.locks.WithLock(ctx, orderKey(orderID), func(ctx context.Context) error {
		stored, items, err := u.GetWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		totalPaid, err := u.payments.TotalPaidForOrder(ctx, orderID)
		if err != nil {
			return err
		}

		totals := calc.OrderTotals(items, stored.Discount, totalPaid)
		status := calc.ResolveStatus(totals.OrderTotal, totalPaid, stored.Status)

		if stored.ItemsTotal == totals.ItemsTotal &&
			stored.DiscountAmount == totals.DiscountAmount &&
			stored.OrderTotal == totals.OrderTotal &&
			stored.TotalPaid == totalPaid &&
			stored.BalanceDue == totals.BalanceDue &&
			stored.Status == status {
			return nil
		}

		order := *stored
		order.ItemsTotal = totals.ItemsTotal
		order.DiscountAmount = totals.DiscountAmount
		order.OrderTotal = totals.OrderTotal
		order.TotalPaid = totalPaid
		order.BalanceDue = totals.BalanceDue
		order.Status = status
		if err := u.orders.Update(ctx, &order); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// ListByStatus returns orders in the given lifecycle state.
func (u *OrderUseCase) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return u.orders.ListByStatus(ctx, status)
}

// ListByClient returns orders belonging to one client.
func (u *OrderUseCase) ListByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	return u.orders.ListByClient(ctx, clientID)
}

// ListByDateRange returns orders whose order date falls into [from, to].
func (u *OrderUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	return u.orders.ListByDateRange(ctx, from, to)
}

// ListAll returns every stored order.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// RecentCompleted returns the most recently updated COMPLETED orders, newest
// first, for the restore menu.
func (u *OrderUseCase) RecentCompleted(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := u.orders.ListByStatus(ctx, model.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	SortOrders(orders, SortNewestUpdated)
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (u *OrderUseCase) recalculate(ctx context.Context, orderID string) (*model.Order, error) {
	stored, items, err := u.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := u.payments.TotalPaidForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totals := calc.OrderTotals(items, stored.Discount, totalPaid)

	order := *stored
	order.ItemsTotal = totals.ItemsTotal
	order.DiscountAmount = totals.DiscountAmount
	order.OrderTotal = totals.OrderTotal
	order.TotalPaid = totalPaid
	order.BalanceDue = totals.BalanceDue
	order.Status = calc.ResolveStatus(totals.OrderTotal, totalPaid, stored.Status)

	if err := u.orders.Update(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (u *OrderUseCase) getOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (u *OrderUseCase) writeAudit(ctx context.Context, entity model.AuditEntity, entityID string, action model.AuditAction, actor string, before, after any) error {
	record := model.AuditRecord{
		EntityType:  entity,
		EntityID:    entityID,
		Action:      action,
		PerformedBy: actor,
	}
	if before != nil {
		data, err := json.Marshal(before)
		if err != nil {
			return err
		}
		record.Before = string(data)
	}
	if after != nil {
		data, err := json.Marshal(after)
		if err != nil {
			return err
		}
		record.After = string(data)
	}
	_, err := u.audit.Append(ctx, record)
	return err
}

func findItem(items []model.OrderItem, itemID string) *model.OrderItem {
	for i := range items {
		if items[i].ID == itemID {
			return &items[i]
		}
	}
	return nil
}

func orderKey(orderID string) string {
	return "order:" + orderID
}
