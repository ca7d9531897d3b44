package app

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

// LedgerFacade is the single entry point the chat interface and the
// reconciliation worker talk to.
type LedgerFacade struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	clients  *usecase.ClientUseCase
	products *usecase.ProductUseCase
	queries  *usecase.QueryUseCase
	users    repository.UserRepository
}

func NewLedgerFacade(
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	clients *usecase.ClientUseCase,
	products *usecase.ProductUseCase,
	queries *usecase.QueryUseCase,
	users repository.UserRepository,
) *LedgerFacade {
	return &LedgerFacade{
		orders:   orders,
		payments: payments,
		clients:  clients,
		products: products,
		queries:  queries,
		users:    users,
	}
}

// AuthorizeUser returns the active user for a chat id, or ErrUserNotFound
// when the id is unknown or deactivated.
func (f *LedgerFacade) AuthorizeUser(ctx context.Context, chatUserID string) (*model.User, error) {
	user, err := f.users.GetByID(ctx, chatUserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	if !user.Active {
		return nil, domainErrors.ErrUserNotFound
	}
	return user, nil
}

// SetUserLanguage stores the user's interface language preference.
func (f *LedgerFacade) SetUserLanguage(ctx context.Context, chatUserID, lang string) error {
	user, err := f.users.GetByID(ctx, chatUserID)
	if err != nil {
		return err
	}
	user.Language = lang
	return f.users.Update(ctx, user)
}

func (f *LedgerFacade) CreateOrder(ctx context.Context, clientID string, orderDate time.Time, items []usecase.OrderItemInput, discount model.Discount, actor string) (*model.Order, []model.OrderItem, error) {
	return f.orders.Create(ctx, clientID, orderDate, items, discount, actor)
}

func (f *LedgerFacade) Order(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error) {
	return f.orders.GetWithItems(ctx, orderID)
}

func (f *LedgerFacade) UpdateOrderDiscount(ctx context.Context, orderID string, discount model.Discount, actor string) (*model.Order, error) {
	return f.orders.UpdateDiscount(ctx, orderID, discount, actor)
}

func (f *LedgerFacade) CancelOrder(ctx context.Context, orderID, actor string) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, actor)
}

func (f *LedgerFacade) RestoreOrder(ctx context.Context, orderID, actor string) (*model.Order, error) {
	return f.orders.Restore(ctx, orderID, actor)
}

func (f *LedgerFacade) UpdateOrderItemQty(ctx context.Context, orderID, itemID string, qty float64, actor string) (*model.Order, error) {
	return f.orders.UpdateItemQty(ctx, orderID, itemID, qty, actor)
}

func (f *LedgerFacade) DeleteOrderItem(ctx context.Context, orderID, itemID, actor string) (*model.Order, error) {
	return f.orders.DeleteItem(ctx, orderID, itemID, actor)
}

func (f *LedgerFacade) OpenOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListByStatus(ctx, model.OrderStatusOpen)
}

func (f *LedgerFacade) ClientOrders(ctx context.Context, clientID string) ([]model.Order, error) {
	return f.orders.ListByClient(ctx, clientID)
}

func (f *LedgerFacade) OrdersByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	return f.orders.ListByDateRange(ctx, from, to)
}

func (f *LedgerFacade) RecentCompletedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.RecentCompleted(ctx, limit)
}

func (f *LedgerFacade) SearchOrders(ctx context.Context, query string, sortBy usecase.OrderSort) ([]model.Order, error) {
	return f.queries.SearchOrders(ctx, query, sortBy)
}

func (f *LedgerFacade) ClientsWithOpenOrders(ctx context.Context) ([]usecase.ClientWithOpenOrders, error) {
	return f.queries.ClientsWithOpenOrders(ctx)
}

func (f *LedgerFacade) ClientsWithDebt(ctx context.Context) ([]usecase.ClientDebt, error) {
	return f.queries.ClientsWithDebt(ctx)
}

func (f *LedgerFacade) RecordPayment(ctx context.Context, orderID string, amount float64, paymentDate time.Time, method model.PaymentMethod, actor string) (*model.Payment, error) {
	return f.payments.Create(ctx, orderID, amount, paymentDate, method, actor)
}

func (f *LedgerFacade) UpdatePayment(ctx context.Context, paymentID string, changes usecase.PaymentUpdate, actor string) (*model.Payment, error) {
	return f.payments.Update(ctx, paymentID, changes, actor)
}

func (f *LedgerFacade) DeletePayment(ctx context.Context, paymentID, actor string) (bool, error) {
	return f.payments.Delete(ctx, paymentID, actor)
}

func (f *LedgerFacade) OrderPayments(ctx context.Context, orderID string) ([]model.Payment, error) {
	return f.payments.ListByOrder(ctx, orderID)
}

func (f *LedgerFacade) CreateClient(ctx context.Context, name, phone, address string) (*model.Client, error) {
	return f.clients.Create(ctx, name, phone, address)
}

func (f *LedgerFacade) Client(ctx context.Context, clientID string) (*model.Client, error) {
	return f.clients.GetByID(ctx, clientID)
}

func (f *LedgerFacade) UpdateClient(ctx context.Context, clientID string, changes usecase.ClientUpdate) (*model.Client, error) {
	return f.clients.Update(ctx, clientID, changes)
}

func (f *LedgerFacade) SearchClients(ctx context.Context, query string) ([]model.Client, error) {
	return f.clients.Search(ctx, query)
}

func (f *LedgerFacade) ListClients(ctx context.Context) ([]model.Client, error) {
	return f.clients.ListAll(ctx, true)
}

func (f *LedgerFacade) CreateProduct(ctx context.Context, name string, defaultPrice, stockQty float64) (*model.Product, error) {
	return f.products.Create(ctx, name, defaultPrice, stockQty)
}

func (f *LedgerFacade) Product(ctx context.Context, productID string) (*model.Product, error) {
	return f.products.GetByID(ctx, productID)
}

func (f *LedgerFacade) UpdateProduct(ctx context.Context, productID string, changes usecase.ProductUpdate) (*model.Product, error) {
	return f.products.Update(ctx, productID, changes)
}

func (f *LedgerFacade) DeactivateProduct(ctx context.Context, productID string) (*model.Product, error) {
	return f.products.Deactivate(ctx, productID)
}

func (f *LedgerFacade) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return f.products.Search(ctx, query)
}

func (f *LedgerFacade) ListProducts(ctx context.Context) ([]model.Product, error) {
	return f.products.ListAll(ctx, true)
}

// OrdersForReconciliation returns up to limit orders, oldest first, for the
// periodic consistency sweep. Cancelled orders are excluded; their snapshot
// never changes. Completed orders stay in scope: a partial failure after a
// payment write can leave them with stale totals too.
func (f *LedgerFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := f.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	candidates := orders[:0]
	for _, order := range orders {
		if order.Status != model.OrderStatusCancelled {
			candidates = append(candidates, order)
		}
	}
	usecase.SortOrders(candidates, usecase.SortOldestDate)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// ReconcileOrder rewrites the stored order snapshot when it drifted from the
// live items and payments. Reports whether a repair happened.
func (f *LedgerFacade) ReconcileOrder(ctx context.Context, orderID string) (bool, error) {
	return f.orders.ReconcileOrder(ctx, orderID)
}
