package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// DiscountType selects how an order discount is interpreted.
type DiscountType string

const (
	DiscountNone    DiscountType = "NONE"
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// Discount is the order-level discount specification.
// Value is a percentage for DiscountPercent and an absolute amount for DiscountFixed.
type Discount struct {
	Type  DiscountType
	Value float64
}

// Order describes one sale transaction for one client.
// ClientName is a snapshot taken at creation and never updated afterwards.
// The derived fields (ItemsTotal through BalanceDue) are recomputed in full
// on every mutation; they are never adjusted incrementally.
type Order struct {
	ID             string
	ClientID       string
	ClientName     string
	OrderDate      time.Time
	Status         OrderStatus
	Discount       Discount
	ItemsTotal     float64
	DiscountAmount float64
	OrderTotal     float64
	TotalPaid      float64
	BalanceDue     float64
	Comment        string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
