package bot

import (
	"sync"
	"time"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// Step names the point of a multi-message conversation a chat is at.
type Step string

const (
	StepNone          Step = ""
	StepOrderClient   Step = "order_client"
	StepOrderProduct  Step = "order_product"
	StepOrderQty      Step = "order_qty"
	StepOrderDiscount Step = "order_discount"
	StepPaymentOrder  Step = "payment_order"
	StepPaymentAmount Step = "payment_amount"
	StepPaymentMethod Step = "payment_method"
	StepClientName    Step = "client_name"
	StepClientPhone   Step = "client_phone"
	StepProductName   Step = "product_name"
	StepProductPrice  Step = "product_price"
	StepItemQty       Step = "item_qty"
	StepSearchOrders  Step = "search_orders"
)

// DraftItem is one collected line of an order being assembled.
type DraftItem struct {
	ProductID   string
	ProductName string
	Qty         float64
	UnitPrice   float64
}

// OrderDraft accumulates a new order across several messages.
type OrderDraft struct {
	ClientID    string
	ClientName  string
	Items       []DraftItem
	Discount    model.Discount
	PendingItem DraftItem
}

// PaymentDraft accumulates a new payment across several messages.
type PaymentDraft struct {
	OrderID string
	Amount  float64
}

// Conversation is the per-chat dialog state. Target carries the entity id a
// step operates on (order id for item edits, client draft name, and so on).
type Conversation struct {
	Step      Step
	Order     OrderDraft
	Payment   PaymentDraft
	Target    string
	Pending   string
	UpdatedAt time.Time
}

// StateStore keeps per-chat conversation state between updates.
type StateStore interface {
	Get(chatID int64) *Conversation
	Set(chatID int64, c *Conversation)
	Clear(chatID int64)
}

// staleAfter bounds how long an abandoned dialog survives.
const staleAfter = 30 * time.Minute

// MemoryStateStore keeps conversations in process memory. State is per bot
// instance; a restart drops unfinished dialogs, which is acceptable.
type MemoryStateStore struct {
	mu    sync.Mutex
	chats map[int64]*Conversation
	now   func() time.Time
}

// NewMemoryStateStore constructs an empty state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{chats: make(map[int64]*Conversation), now: time.Now}
}

// Get returns the conversation for chatID, or a fresh one when none exists
// or the stored one went stale.
func (s *MemoryStateStore) Get(chatID int64) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[chatID]
	if !ok || s.now().Sub(c.UpdatedAt) > staleAfter {
		return &Conversation{}
	}
	copy := *c
	return &copy
}

// Set stores the conversation for chatID.
func (s *MemoryStateStore) Set(chatID int64, c *Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.UpdatedAt = s.now()
	stored := *c
	s.chats[chatID] = &stored
}

// Clear drops the conversation for chatID.
func (s *MemoryStateStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chatID)
}
