package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
)

// OrderSort selects the order list ordering for menus.
type OrderSort string

const (
	SortNewestUpdated  OrderSort = "newest_updated"
	SortLargestBalance OrderSort = "largest_balance"
	SortByDate         OrderSort = "by_date"
	SortOldestDate     OrderSort = "oldest_date"
)

// ClientWithOpenOrders groups a client with their open orders and the
// summed balance due across them.
type ClientWithOpenOrders struct {
	Client           model.Client
	OpenOrders       []model.Order
	TotalOpenBalance float64
}

// ClientDebt pairs a client with the total balance due on their open orders.
type ClientDebt struct {
	Client    model.Client
	TotalDebt float64
}

// Page is one slice of a longer listing.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// QueryUseCase answers the read-side questions the chat menus need.
type QueryUseCase struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
}

// NewQueryUseCase constructs QueryUseCase.
func NewQueryUseCase(orders repository.OrderRepository, clients repository.ClientRepository) *QueryUseCase {
	return &QueryUseCase{orders: orders, clients: clients}
}

// ClientsWithOpenOrders returns active clients that have at least one open
// order, with the open orders and their summed balance attached.
func (u *QueryUseCase) ClientsWithOpenOrders(ctx context.Context) ([]ClientWithOpenOrders, error) {
	open, err := u.orders.ListByStatus(ctx, model.OrderStatusOpen)
	if err != nil {
		return nil, err
	}
	clients, err := u.clients.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}

	byClient := make(map[string][]model.Order)
	for _, order := range open {
		byClient[order.ClientID] = append(byClient[order.ClientID], order)
	}

	var result []ClientWithOpenOrders
	for _, client := range clients {
		orders := byClient[client.ID]
		if len(orders) == 0 {
			continue
		}
		var balance float64
		for _, order := range orders {
			balance += order.BalanceDue
		}
		result = append(result, ClientWithOpenOrders{
			Client:           client,
			OpenOrders:       orders,
			TotalOpenBalance: balance,
		})
	}
	return result, nil
}

// ClientsWithDebt returns every active client with the total balance due on
// their open orders, zero when they owe nothing.
func (u *QueryUseCase) ClientsWithDebt(ctx context.Context) ([]ClientDebt, error) {
	clients, err := u.clients.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}
	open, err := u.orders.ListByStatus(ctx, model.OrderStatusOpen)
	if err != nil {
		return nil, err
	}

	debt := make(map[string]float64)
	for _, order := range open {
		debt[order.ClientID] += order.BalanceDue
	}

	result := make([]ClientDebt, 0, len(clients))
	for _, client := range clients {
		result = append(result, ClientDebt{Client: client, TotalDebt: debt[client.ID]})
	}
	return result, nil
}

var dateQueryPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchOrders finds orders by exact id, order date (YYYY-MM-DD) or client
// name fragment. Queries shorter than two characters return no results.
func (u *QueryUseCase) SearchOrders(ctx context.Context, query string, sortBy OrderSort) ([]model.Order, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < 2 {
		return nil, nil
	}

	all, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(q, "ord-") {
		for _, order := range all {
			if strings.ToLower(order.ID) == q {
				return []model.Order{order}, nil
			}
		}
	}

	var results []model.Order
	if dateQueryPattern.MatchString(q) {
		for _, order := range all {
			if order.OrderDate.Format("2006-01-02") == q {
				results = append(results, order)
			}
		}
	} else {
		for _, order := range all {
			if strings.Contains(strings.ToLower(order.ClientName), q) {
				results = append(results, order)
			}
		}
	}

	SortOrders(results, sortBy)
	return results, nil
}

// SortOrders orders the slice in place according to the requested sort.
func SortOrders(orders []model.Order, sortBy OrderSort) {
	switch sortBy {
	case SortLargestBalance:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].BalanceDue > orders[j].BalanceDue })
	case SortByDate:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	case SortOldestDate:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate.Before(orders[j].OrderDate) })
	default:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].UpdatedAt.After(orders[j].UpdatedAt) })
	}
}

// Paginate slices items into the requested zero-based page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		Size:       pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages-1,
		HasPrev:    page > 0,
	}
}
