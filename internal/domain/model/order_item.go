package model

// OrderItem is one product line within an order.
// ProductName is a snapshot for historical accuracy.
// Subtotal is always Qty*UnitPrice, recomputed on every mutation.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Qty         float64
	UnitPrice   float64
	Subtotal    float64
}
