package test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order
	Next   int
	Err    error

	UpdateCalls int
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
}

// Create stores the order, assigning identity and timestamps.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = fmt.Sprintf("ORD-%d", s.Next)
	s.Next++
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	stored := order
	s.Orders[order.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches order by identifier or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[orderID]; ok {
		copy := *order
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns every stored order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.Orders {
		result = append(result, *order)
	}
	return result, nil
}

// ListByStatus filters stored orders by status.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	orders, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var result []model.Order
	for _, order := range orders {
		if order.Status == status {
			result = append(result, order)
		}
	}
	return result, nil
}

// ListByClient filters stored orders by client.
func (s *OrderRepositoryStub) ListByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	orders, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var result []model.Order
	for _, order := range orders {
		if order.ClientID == clientID {
			result = append(result, order)
		}
	}
	return result, nil
}

// ListByDateRange filters stored orders by order date.
func (s *OrderRepositoryStub) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	orders, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var result []model.Order
	for _, order := range orders {
		if !order.OrderDate.Before(from) && !order.OrderDate.After(to) {
			result = append(result, order)
		}
	}
	return result, nil
}

// Update rewrites the stored order and counts invocations.
func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.Order) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	order.UpdatedAt = time.Now()
	stored := *order
	s.Orders[order.ID] = &stored
	s.UpdateCalls++
	return nil
}

// OrderItemRepositoryStub stores order lines in-memory for tests.
type OrderItemRepositoryStub struct {
	mu    sync.Mutex
	Items map[string]*model.OrderItem
	Next  int
	Err   error
}

// NewOrderItemRepositoryStub constructs stub repository with initialized maps.
func NewOrderItemRepositoryStub() *OrderItemRepositoryStub {
	return &OrderItemRepositoryStub{Items: make(map[string]*model.OrderItem), Next: 1}
}

// Create stores the item, assigning identity.
func (s *OrderItemRepositoryStub) Create(ctx context.Context, item model.OrderItem) (*model.OrderItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = fmt.Sprintf("OITM-%d", s.Next)
	s.Next++
	stored := item
	s.Items[item.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches item by identifier or returns not found.
func (s *OrderItemRepositoryStub) GetByID(ctx context.Context, itemID string) (*model.OrderItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.Items[itemID]; ok {
		copy := *item
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns live items belonging to the order.
func (s *OrderItemRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.OrderItem
	for _, item := range s.Items {
		if item.OrderID == orderID {
			result = append(result, *item)
		}
	}
	return result, nil
}

// Update rewrites the stored item.
func (s *OrderItemRepositoryStub) Update(ctx context.Context, item *model.OrderItem) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[item.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *item
	s.Items[item.ID] = &stored
	return nil
}

// SoftDelete removes the item from reads while keeping its slot semantics.
func (s *OrderItemRepositoryStub) SoftDelete(ctx context.Context, itemID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[itemID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, itemID)
	return nil
}

// PaymentRepositoryStub stores payments in-memory for tests.
type PaymentRepositoryStub struct {
	mu       sync.Mutex
	Payments map[string]*model.Payment
	Next     int
	Err      error
}

// NewPaymentRepositoryStub constructs stub repository with initialized maps.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[string]*model.Payment), Next: 1}
}

// Create stores the payment, assigning identity and created timestamp.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payment.ID = fmt.Sprintf("PAY-%d", s.Next)
	s.Next++
	payment.CreatedAt = time.Now()
	stored := payment
	s.Payments[payment.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches payment by identifier or returns not found.
func (s *PaymentRepositoryStub) GetByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if payment, ok := s.Payments[paymentID]; ok {
		copy := *payment
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns every live payment.
func (s *PaymentRepositoryStub) ListAll(ctx context.Context) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Payment
	for _, payment := range s.Payments {
		result = append(result, *payment)
	}
	return result, nil
}

// ListByOrder returns live payments applied toward the order.
func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Payment
	for _, payment := range s.Payments {
		if payment.OrderID == orderID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

// TotalPaidForOrder sums live payment amounts for the order.
func (s *PaymentRepositoryStub) TotalPaidForOrder(ctx context.Context, orderID string) (float64, error) {
	payments, err := s.ListByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, payment := range payments {
		total += payment.Amount
	}
	return total, nil
}

// Update rewrites the stored payment.
func (s *PaymentRepositoryStub) Update(ctx context.Context, payment *model.Payment) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Payments[payment.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *payment
	s.Payments[payment.ID] = &stored
	return nil
}

// SoftDelete removes the payment from reads.
func (s *PaymentRepositoryStub) SoftDelete(ctx context.Context, paymentID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Payments[paymentID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Payments, paymentID)
	return nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[string]*model.Product
	Next     int
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[string]*model.Product), Next: 1}
}

// Create stores the product, assigning identity.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = fmt.Sprintf("PRD-%d", s.Next)
	s.Next++
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	stored := product
	s.Products[product.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches product by identifier or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if product, ok := s.Products[productID]; ok {
		copy := *product
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns stored products, optionally only active ones.
func (s *ProductRepositoryStub) ListAll(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Product
	for _, product := range s.Products {
		if activeOnly && !product.Active {
			continue
		}
		result = append(result, *product)
	}
	return result, nil
}

// Search filters products by case-insensitive name fragment.
func (s *ProductRepositoryStub) Search(ctx context.Context, query string, activeOnly bool) ([]model.Product, error) {
	products, err := s.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var result []model.Product
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), q) {
			result = append(result, product)
		}
	}
	return result, nil
}

// Update rewrites the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Products[product.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	stored := *product
	s.Products[product.ID] = &stored
	return nil
}

// ClientRepositoryStub stores clients in-memory for tests.
type ClientRepositoryStub struct {
	mu      sync.Mutex
	Clients map[string]*model.Client
	Next    int
	Err     error
}

// NewClientRepositoryStub constructs stub repository with initialized maps.
func NewClientRepositoryStub() *ClientRepositoryStub {
	return &ClientRepositoryStub{Clients: make(map[string]*model.Client), Next: 1}
}

// Create stores the client, assigning identity.
func (s *ClientRepositoryStub) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	client.ID = fmt.Sprintf("CLI-%d", s.Next)
	s.Next++
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now
	stored := client
	s.Clients[client.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches client by identifier or returns not found.
func (s *ClientRepositoryStub) GetByID(ctx context.Context, clientID string) (*model.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.Clients[clientID]; ok {
		copy := *client
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns stored clients, optionally only active ones.
func (s *ClientRepositoryStub) ListAll(ctx context.Context, activeOnly bool) ([]model.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Client
	for _, client := range s.Clients {
		if activeOnly && !client.Active {
			continue
		}
		result = append(result, *client)
	}
	return result, nil
}

// Search filters clients by case-insensitive name fragment.
func (s *ClientRepositoryStub) Search(ctx context.Context, query string, activeOnly bool) ([]model.Client, error) {
	clients, err := s.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var result []model.Client
	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.Name), q) {
			result = append(result, client)
		}
	}
	return result, nil
}

// Update rewrites the stored client.
func (s *ClientRepositoryStub) Update(ctx context.Context, client *model.Client) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Clients[client.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	client.UpdatedAt = time.Now()
	stored := *client
	s.Clients[client.ID] = &stored
	return nil
}

// UserRepositoryStub stores chat users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Create stores the user keyed by its chat identifier.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user.CreatedAt = time.Now()
	stored := user
	s.Users[user.ID] = &stored
	copy := stored
	return &copy, nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, userID string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.Users[userID]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns stored users, optionally only active ones.
func (s *UserRepositoryStub) ListAll(ctx context.Context, activeOnly bool) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.User
	for _, user := range s.Users {
		if activeOnly && !user.Active {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

// Update rewrites the stored user.
func (s *UserRepositoryStub) Update(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Users[user.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *user
	s.Users[user.ID] = &stored
	return nil
}

// AuditRepositoryStub records appended audit entries for tests.
type AuditRepositoryStub struct {
	mu      sync.Mutex
	Records []model.AuditRecord
	Next    int
	Err     error
}

// Append stores the record, assigning identity and timestamp.
func (s *AuditRepositoryStub) Append(ctx context.Context, record model.AuditRecord) (*model.AuditRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Next++
	record.ID = fmt.Sprintf("AUD-%d", s.Next)
	record.Timestamp = time.Now()
	s.Records = append(s.Records, record)
	copy := record
	return &copy, nil
}
