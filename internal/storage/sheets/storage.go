package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dokonbot/dokonbot/internal/domain/repository"
)

// Worksheet layout. Column order is the contract between the codecs and the
// spreadsheet; append new columns at the end only.
var (
	tabOrders = tab{
		name:    "orders",
		lastCol: "P",
		headers: []string{
			"id", "client_id", "client_name", "order_date", "status",
			"discount_type", "discount_value", "items_total", "discount_amount",
			"order_total", "total_paid", "balance_due", "comment",
			"created_by", "created_at", "updated_at",
		},
	}
	tabOrderItems = tab{
		name:    "order_items",
		lastCol: "G",
		headers: []string{"id", "order_id", "product_id", "product_name", "qty", "unit_price", "subtotal"},
	}
	tabPayments = tab{
		name:    "payments",
		lastCol: "G",
		headers: []string{"id", "order_id", "amount", "payment_date", "method", "created_by", "created_at"},
	}
	tabProducts = tab{
		name:    "products",
		lastCol: "G",
		headers: []string{"id", "name", "default_price", "stock_qty", "active", "created_at", "updated_at"},
	}
	tabClients = tab{
		name:    "clients",
		lastCol: "G",
		headers: []string{"id", "name", "phone", "address", "active", "created_at", "updated_at"},
	}
	tabUsers = tab{
		name:    "users",
		lastCol: "H",
		headers: []string{"id", "username", "first_name", "last_name", "role", "active", "language", "created_at"},
	}
	tabAudit = tab{
		name:    "audit_log",
		lastCol: "H",
		headers: []string{"id", "entity_type", "entity_id", "action", "before", "after", "performed_by", "timestamp"},
	}
	tabLocks = tab{
		name:    "locks",
		lastCol: "D",
		headers: []string{"key", "owner", "acquired_at", "expires_at"},
	}
)

// Storage is the spreadsheet-backed persistence layer. One instance serves
// all repositories against a single spreadsheet.
type Storage struct {
	service       *sheetsapi.Service
	spreadsheetID string
	log           *slog.Logger

	// mu serializes writes from this process; appends on the same tab would
	// otherwise race for the next free row.
	mu sync.Mutex
}

// NewStorage constructs the storage layer over an authenticated service.
func NewStorage(service *sheetsapi.Service, spreadsheetID string, log *slog.Logger) *Storage {
	return &Storage{
		service:       service,
		spreadsheetID: spreadsheetID,
		log:           log.With("component", "sheets"),
	}
}

// Init creates every worksheet and header row that does not exist yet. Safe
// to run on every startup.
func (s *Storage) Init(ctx context.Context) error {
	tabs := []tab{tabOrders, tabOrderItems, tabPayments, tabProducts, tabClients, tabUsers, tabAudit, tabLocks}
	for _, t := range tabs {
		if err := s.ensureTab(ctx, t); err != nil {
			return fmt.Errorf("bootstrap %s: %w", t.name, err)
		}
	}
	s.log.Info("spreadsheet bootstrap complete", "tabs", len(tabs))
	return nil
}

// Orders returns the order repository.
func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{storage: s} }

// OrderItems returns the order line repository.
func (s *Storage) OrderItems() repository.OrderItemRepository {
	return &orderItemRepository{storage: s}
}

// Payments returns the payment repository.
func (s *Storage) Payments() repository.PaymentRepository { return &paymentRepository{storage: s} }

// Products returns the product catalog repository.
func (s *Storage) Products() repository.ProductRepository { return &productRepository{storage: s} }

// Clients returns the client directory repository.
func (s *Storage) Clients() repository.ClientRepository { return &clientRepository{storage: s} }

// Users returns the chat user repository.
func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }

// Audit returns the append-only audit log.
func (s *Storage) Audit() repository.AuditRepository { return &auditRepository{storage: s} }

var _ repository.Factory = (*Storage)(nil)
