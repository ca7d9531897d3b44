package calc

import (
	"math"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// LineSubtotal computes one item line: qty * unitPrice. Qty may be fractional.
func LineSubtotal(qty, unitPrice float64) float64 {
	return qty * unitPrice
}

// DiscountAmount computes the amount subtracted from subtotal for the given
// discount specification.
//
// Percent values are clamped into [0,100] before use, fixed values into
// [0,subtotal]; out-of-range input is corrected, not rejected. The percent
// amount is rounded half-up once, on the final value.
func DiscountAmount(subtotal float64, d model.Discount) float64 {
	switch d.Type {
	case model.DiscountPercent:
		percent := math.Max(0, math.Min(100, d.Value))
		return math.Round(subtotal * percent / 100)
	case model.DiscountFixed:
		return math.Max(0, math.Min(subtotal, d.Value))
	default:
		return 0
	}
}

// OrderTotal is subtotal minus discount. Non-negative given the clamps above.
func OrderTotal(subtotal, discountAmount float64) float64 {
	return subtotal - discountAmount
}

// BalanceDue is the remaining amount owed. Negative means overpayment.
func BalanceDue(total, totalPaid float64) float64 {
	return total - totalPaid
}

// Overpayment returns how much was paid above the total, zero when not overpaid.
func Overpayment(total, totalPaid float64) float64 {
	return math.Max(0, totalPaid-total)
}

// IsOverpaid reports whether payments exceed the order total.
func IsOverpaid(total, totalPaid float64) bool {
	return totalPaid > total
}

// Totals is the full derived snapshot of an order.
type Totals struct {
	ItemsTotal     float64
	DiscountAmount float64
	OrderTotal     float64
	BalanceDue     float64
}

// OrderTotals recomputes every derived order field from scratch.
func OrderTotals(items []model.OrderItem, d model.Discount, totalPaid float64) Totals {
	var itemsTotal float64
	for _, item := range items {
		itemsTotal += item.Subtotal
	}

	discountAmount := DiscountAmount(itemsTotal, d)
	total := OrderTotal(itemsTotal, discountAmount)

	return Totals{
		ItemsTotal:     itemsTotal,
		DiscountAmount: discountAmount,
		OrderTotal:     total,
		BalanceDue:     BalanceDue(total, totalPaid),
	}
}

// ResolveStatus maps the current payment state onto the order lifecycle.
//
// CANCELLED is absorbing: no payment activity reopens a cancelled order.
// A zero-total order with no payments resolves to COMPLETED (0 >= 0); a fully
// discounted order is immediately complete by policy.
func ResolveStatus(total, totalPaid float64, current model.OrderStatus) model.OrderStatus {
	if current == model.OrderStatusCancelled {
		return model.OrderStatusCancelled
	}
	if totalPaid >= total {
		return model.OrderStatusCompleted
	}
	return model.OrderStatusOpen
}
