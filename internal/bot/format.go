package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dokonbot/dokonbot/internal/domain/calc"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/i18n"
)

// FormatMoney renders an amount in so'm with space-grouped thousands.
// Fractional tiyin parts are kept only when present.
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	frac := amount - float64(whole)

	digits := strconv.FormatInt(whole, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	result := strings.Join(groups, " ")
	if frac > 0.004 {
		result += strings.TrimPrefix(strconv.FormatFloat(frac, 'f', 2, 64), "0")
	}
	if negative {
		result = "-" + result
	}
	return result + " so'm"
}

// formatQty drops the trailing .0 of whole quantities.
func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// OrderCard renders the full order summary shown in chat.
func OrderCard(tr *i18n.Translator, lang string, order *model.Order, items []model.OrderItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", order.ID)
	fmt.Fprintf(&b, "%s · %s\n", order.ClientName, order.OrderDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "[%s]\n\n", tr.T(lang, "status."+string(order.Status)))

	for _, item := range items {
		fmt.Fprintf(&b, "• %s  %s × %s = %s\n",
			item.ProductName, formatQty(item.Qty), FormatMoney(item.UnitPrice), FormatMoney(item.Subtotal))
	}

	fmt.Fprintf(&b, "\n%s", FormatMoney(order.ItemsTotal))
	if order.Discount.Type != model.DiscountNone && order.DiscountAmount > 0 {
		fmt.Fprintf(&b, " − %s", FormatMoney(order.DiscountAmount))
	}
	fmt.Fprintf(&b, " = %s\n", FormatMoney(order.OrderTotal))
	fmt.Fprintf(&b, "%s / %s\n", FormatMoney(order.TotalPaid), FormatMoney(order.OrderTotal))

	if calc.IsOverpaid(order.OrderTotal, order.TotalPaid) {
		fmt.Fprintf(&b, "%s\n", tr.T(lang, "order.overpaid", FormatMoney(calc.Overpayment(order.OrderTotal, order.TotalPaid))))
	} else if order.BalanceDue > 0 {
		fmt.Fprintf(&b, "%s\n", FormatMoney(order.BalanceDue))
	}

	if order.Comment != "" {
		fmt.Fprintf(&b, "\n%s\n", order.Comment)
	}

	return b.String()
}

// orderLine renders one order for list views.
func orderLine(order model.Order) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		order.ID, order.OrderDate.Format("2006-01-02"), order.ClientName, FormatMoney(order.BalanceDue))
}
