package model

import "time"

// PaymentMethod describes how a payment was made.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Payment is one payment applied toward an order.
type Payment struct {
	ID          string
	OrderID     string
	Amount      float64
	PaymentDate time.Time
	Method      PaymentMethod
	CreatedBy   string
	CreatedAt   time.Time
}
