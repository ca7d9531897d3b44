package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

const recentOrdersLimit = 10

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *model.User) {
	chatID := msg.Chat.ID
	lang := b.lang(user)

	switch msg.Command() {
	case "start":
		b.states.Clear(chatID)
		b.replyWithMarkup(chatID, b.tr.T(lang, "menu.main"), mainMenuKeyboard(b.tr, lang))
	case "orders":
		b.showOpenOrders(ctx, chatID, lang)
	case "neworder":
		b.startOrderDraft(chatID, lang)
	case "pay":
		b.startPayment(chatID, lang)
	case "clients":
		b.startClient(chatID, lang)
	case "products":
		b.startProduct(ctx, chatID, lang)
	case "reports":
		b.showDebtors(ctx, chatID, lang)
	case "find":
		query := strings.TrimSpace(msg.CommandArguments())
		if query == "" {
			b.states.Set(chatID, &Conversation{Step: StepSearchOrders})
			b.reply(chatID, b.tr.T(lang, "order.ask_client"))
			return
		}
		b.showSearchResults(ctx, chatID, lang, query)
	case "lang":
		code := strings.TrimSpace(msg.CommandArguments())
		if code != "uz" && code != "en" {
			return
		}
		if err := b.facade.SetUserLanguage(ctx, user.ID, code); err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.replyWithMarkup(chatID, b.tr.T(code, "menu.main"), mainMenuKeyboard(b.tr, code))
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, user *model.User) {
	chatID := msg.Chat.ID
	lang := b.lang(user)
	text := strings.TrimSpace(msg.Text)
	conv := b.states.Get(chatID)

	if conv.Step == StepNone {
		b.handleMenuText(ctx, chatID, lang, text)
		return
	}

	switch conv.Step {
	case StepOrderClient:
		b.stepOrderClient(ctx, chatID, lang, text)
	case StepOrderQty:
		b.stepOrderQty(ctx, chatID, lang, text, conv)
	case StepOrderDiscount:
		b.stepOrderDiscount(ctx, chatID, lang, text, conv, user)
	case StepPaymentOrder:
		b.stepPaymentOrder(ctx, chatID, lang, text, conv)
	case StepPaymentAmount:
		b.stepPaymentAmount(chatID, lang, text, conv)
	case StepClientName:
		conv.Pending = text
		conv.Step = StepClientPhone
		b.states.Set(chatID, conv)
		b.reply(chatID, b.tr.T(lang, "client.ask_name"))
	case StepClientPhone:
		client, err := b.facade.CreateClient(ctx, conv.Pending, text, "")
		if err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.states.Clear(chatID)
		b.reply(chatID, b.tr.T(lang, "client.created", client.Name))
	case StepProductName:
		conv.Pending = text
		conv.Step = StepProductPrice
		b.states.Set(chatID, conv)
		b.reply(chatID, b.tr.T(lang, "payment.ask_amount"))
	case StepProductPrice:
		price, err := parseNumber(text)
		if err != nil || price < 0 {
			b.reply(chatID, b.tr.T(lang, "error.invalid_amount"))
			return
		}
		product, err := b.facade.CreateProduct(ctx, conv.Pending, price, 0)
		if err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.states.Clear(chatID)
		b.reply(chatID, b.tr.T(lang, "product.created", product.Name))
	case StepItemQty:
		b.stepItemQty(ctx, chatID, lang, text, conv, user)
	case StepSearchOrders:
		b.states.Clear(chatID)
		b.showSearchResults(ctx, chatID, lang, text)
	}
}

func (b *Bot) handleMenuText(ctx context.Context, chatID int64, lang, text string) {
	switch text {
	case b.tr.T(lang, "menu.orders"):
		b.showOpenOrders(ctx, chatID, lang)
	case b.tr.T(lang, "menu.payments"):
		b.startPayment(chatID, lang)
	case b.tr.T(lang, "menu.clients"):
		b.startClient(chatID, lang)
	case b.tr.T(lang, "menu.products"):
		b.startProduct(ctx, chatID, lang)
	case b.tr.T(lang, "menu.reports"):
		b.showDebtors(ctx, chatID, lang)
	}
}

func (b *Bot) dispatchCallback(ctx context.Context, chatID int64, data string, user *model.User) {
	lang := b.lang(user)
	action, id := parseCallback(data)

	switch action {
	case cbOrderView:
		b.showOrderCard(ctx, chatID, lang, id)
	case cbOrderCancel:
		if _, err := b.facade.CancelOrder(ctx, id, user.ID); err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.reply(chatID, b.tr.T(lang, "order.cancelled", id))
	case cbOrderRestore:
		if _, err := b.facade.RestoreOrder(ctx, id, user.ID); err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.reply(chatID, b.tr.T(lang, "order.restored", id))
		b.showOrderCard(ctx, chatID, lang, id)
	case cbOrderPay:
		b.states.Set(chatID, &Conversation{Step: StepPaymentAmount, Payment: PaymentDraft{OrderID: id}})
		b.reply(chatID, b.tr.T(lang, "payment.ask_amount"))
	case cbOrderItems:
		b.showOrderItems(ctx, chatID, lang, id)
	case cbOrderDiscount:
		b.states.Set(chatID, &Conversation{Target: id})
		b.replyWithMarkup(chatID, b.tr.T(lang, "order.ask_discount"), discountKeyboard())
	case cbItemEdit:
		conv := b.states.Get(chatID)
		conv.Step = StepItemQty
		conv.Pending = id
		b.states.Set(chatID, conv)
		b.reply(chatID, b.tr.T(lang, "order.ask_qty"))
	case cbItemDelete:
		conv := b.states.Get(chatID)
		order, err := b.facade.DeleteOrderItem(ctx, conv.Target, id, user.ID)
		if err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.states.Clear(chatID)
		b.reply(chatID, b.tr.T(lang, "order.updated", order.ID))
		b.showOrderCard(ctx, chatID, lang, order.ID)
	case cbClientPick:
		b.pickDraftClient(ctx, chatID, lang, id)
	case cbProductPick:
		b.pickDraftProduct(ctx, chatID, lang, id)
	case cbDraftMore:
		b.askProduct(ctx, chatID, lang)
	case cbDraftDone:
		conv := b.states.Get(chatID)
		conv.Step = StepNone
		b.states.Set(chatID, conv)
		b.replyWithMarkup(chatID, b.tr.T(lang, "order.ask_discount"), discountKeyboard())
	case cbDiscountPick:
		b.pickDiscount(ctx, chatID, lang, id, user)
	case cbMethodPick:
		b.pickPaymentMethod(ctx, chatID, lang, id, user)
	}
}

// Order listing and card

func (b *Bot) showOpenOrders(ctx context.Context, chatID int64, lang string) {
	orders, err := b.facade.OpenOrders(ctx)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	if len(orders) == 0 {
		b.reply(chatID, b.tr.T(lang, "order.not_found"))
		return
	}
	usecase.SortOrders(orders, usecase.SortNewestUpdated)
	if len(orders) > recentOrdersLimit {
		orders = orders[:recentOrdersLimit]
	}
	b.replyWithMarkup(chatID, b.tr.T(lang, "report.open"), orderListKeyboard(orders))
}

func (b *Bot) showOrderCard(ctx context.Context, chatID int64, lang, orderID string) {
	order, items, err := b.facade.Order(ctx, orderID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	b.replyWithMarkup(chatID, OrderCard(b.tr, lang, order, items), orderActionsKeyboard(b.tr, lang, order))
}

func (b *Bot) showOrderItems(ctx context.Context, chatID int64, lang, orderID string) {
	_, items, err := b.facade.Order(ctx, orderID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	b.states.Set(chatID, &Conversation{Target: orderID})
	b.replyWithMarkup(chatID, b.tr.T(lang, "menu.products"), orderItemsKeyboard(items))
}

func (b *Bot) showSearchResults(ctx context.Context, chatID int64, lang, query string) {
	orders, err := b.facade.SearchOrders(ctx, query, usecase.SortNewestUpdated)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	if len(orders) == 0 {
		b.reply(chatID, b.tr.T(lang, "order.not_found"))
		return
	}
	if len(orders) > recentOrdersLimit {
		orders = orders[:recentOrdersLimit]
	}
	b.replyWithMarkup(chatID, b.tr.T(lang, "menu.orders"), orderListKeyboard(orders))
}

func (b *Bot) showDebtors(ctx context.Context, chatID int64, lang string) {
	debts, err := b.facade.ClientsWithDebt(ctx)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	var lines []string
	for _, debt := range debts {
		if debt.TotalDebt <= 0 {
			continue
		}
		lines = append(lines, debt.Client.Name+": "+FormatMoney(debt.TotalDebt))
	}
	if len(lines) == 0 {
		b.reply(chatID, b.tr.T(lang, "report.debtors"))
		return
	}
	b.reply(chatID, b.tr.T(lang, "report.debtors")+"\n\n"+strings.Join(lines, "\n"))
}

// New order flow

func (b *Bot) startOrderDraft(chatID int64, lang string) {
	b.states.Set(chatID, &Conversation{Step: StepOrderClient})
	b.reply(chatID, b.tr.T(lang, "order.ask_client"))
}

func (b *Bot) stepOrderClient(ctx context.Context, chatID int64, lang, query string) {
	clients, err := b.facade.SearchClients(ctx, query)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	if len(clients) == 0 {
		b.reply(chatID, b.tr.T(lang, "error.client_not_found"))
		return
	}
	b.replyWithMarkup(chatID, b.tr.T(lang, "order.ask_client"), clientPickKeyboard(clients))
}

func (b *Bot) pickDraftClient(ctx context.Context, chatID int64, lang, clientID string) {
	client, err := b.facade.Client(ctx, clientID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	conv := b.states.Get(chatID)
	conv.Order.ClientID = client.ID
	conv.Order.ClientName = client.Name
	conv.Step = StepOrderProduct
	b.states.Set(chatID, conv)
	b.askProduct(ctx, chatID, lang)
}

func (b *Bot) askProduct(ctx context.Context, chatID int64, lang string) {
	products, err := b.facade.ListProducts(ctx)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	if len(products) == 0 {
		b.reply(chatID, b.tr.T(lang, "error.product_not_found"))
		return
	}
	b.replyWithMarkup(chatID, b.tr.T(lang, "order.ask_product"), productPickKeyboard(products))
}

func (b *Bot) pickDraftProduct(ctx context.Context, chatID int64, lang, productID string) {
	product, err := b.facade.Product(ctx, productID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	conv := b.states.Get(chatID)
	conv.Order.PendingItem = DraftItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.DefaultPrice,
	}
	conv.Step = StepOrderQty
	b.states.Set(chatID, conv)
	b.reply(chatID, b.tr.T(lang, "order.ask_qty"))
}

func (b *Bot) stepOrderQty(ctx context.Context, chatID int64, lang, text string, conv *Conversation) {
	qty, err := parseNumber(text)
	if err != nil || qty <= 0 {
		b.reply(chatID, b.tr.T(lang, "error.invalid_qty"))
		return
	}
	item := conv.Order.PendingItem
	item.Qty = qty
	conv.Order.Items = append(conv.Order.Items, item)
	conv.Order.PendingItem = DraftItem{}
	conv.Step = StepOrderProduct
	b.states.Set(chatID, conv)

	var lines []string
	for _, line := range conv.Order.Items {
		lines = append(lines, line.ProductName+" × "+formatQty(line.Qty))
	}
	b.replyWithMarkup(chatID, strings.Join(lines, "\n"), draftKeyboard(b.tr, lang))
}

func (b *Bot) pickDiscount(ctx context.Context, chatID int64, lang, kind string, user *model.User) {
	conv := b.states.Get(chatID)

	if kind == "none" {
		if conv.Target != "" {
			order, err := b.facade.UpdateOrderDiscount(ctx, conv.Target, model.Discount{Type: model.DiscountNone}, user.ID)
			if err != nil {
				b.replyError(chatID, lang, err)
				return
			}
			b.states.Clear(chatID)
			b.showExistingOrder(ctx, chatID, lang, order.ID)
			return
		}
		conv.Order.Discount = model.Discount{Type: model.DiscountNone}
		b.finishOrderDraft(ctx, chatID, lang, conv, user)
		return
	}

	conv.Pending = kind
	conv.Step = StepOrderDiscount
	b.states.Set(chatID, conv)
	b.reply(chatID, b.tr.T(lang, "order.ask_discount"))
}

func (b *Bot) stepOrderDiscount(ctx context.Context, chatID int64, lang, text string, conv *Conversation, user *model.User) {
	value, err := parseNumber(text)
	if err != nil {
		b.reply(chatID, b.tr.T(lang, "error.invalid_discount"))
		return
	}

	discount := model.Discount{Value: value}
	switch conv.Pending {
	case "percent":
		discount.Type = model.DiscountPercent
	case "fixed":
		discount.Type = model.DiscountFixed
	default:
		discount.Type = model.DiscountNone
		discount.Value = 0
	}

	if conv.Target != "" {
		order, err := b.facade.UpdateOrderDiscount(ctx, conv.Target, discount, user.ID)
		if err != nil {
			b.replyError(chatID, lang, err)
			return
		}
		b.states.Clear(chatID)
		b.showExistingOrder(ctx, chatID, lang, order.ID)
		return
	}

	conv.Order.Discount = discount
	b.finishOrderDraft(ctx, chatID, lang, conv, user)
}

func (b *Bot) finishOrderDraft(ctx context.Context, chatID int64, lang string, conv *Conversation, user *model.User) {
	inputs := make([]usecase.OrderItemInput, 0, len(conv.Order.Items))
	for _, item := range conv.Order.Items {
		price := item.UnitPrice
		inputs = append(inputs, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: &price,
		})
	}

	order, items, err := b.facade.CreateOrder(ctx, conv.Order.ClientID, time.Now(), inputs, conv.Order.Discount, user.ID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	b.states.Clear(chatID)
	b.reply(chatID, b.tr.T(lang, "order.created", order.ID))
	b.replyWithMarkup(chatID, OrderCard(b.tr, lang, order, items), orderActionsKeyboard(b.tr, lang, order))
}

func (b *Bot) showExistingOrder(ctx context.Context, chatID int64, lang, orderID string) {
	b.reply(chatID, b.tr.T(lang, "order.updated", orderID))
	b.showOrderCard(ctx, chatID, lang, orderID)
}

// Item edits

func (b *Bot) stepItemQty(ctx context.Context, chatID int64, lang, text string, conv *Conversation, user *model.User) {
	qty, err := parseNumber(text)
	if err != nil || qty <= 0 {
		b.reply(chatID, b.tr.T(lang, "error.invalid_qty"))
		return
	}
	order, err := b.facade.UpdateOrderItemQty(ctx, conv.Target, conv.Pending, qty, user.ID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	b.states.Clear(chatID)
	b.showExistingOrder(ctx, chatID, lang, order.ID)
}

// Payments

func (b *Bot) startPayment(chatID int64, lang string) {
	b.states.Set(chatID, &Conversation{Step: StepPaymentOrder})
	b.reply(chatID, b.tr.T(lang, "order.ask_client"))
}

func (b *Bot) stepPaymentOrder(ctx context.Context, chatID int64, lang, query string, conv *Conversation) {
	orders, err := b.facade.SearchOrders(ctx, query, usecase.SortNewestUpdated)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	if len(orders) == 0 {
		b.reply(chatID, b.tr.T(lang, "order.not_found"))
		return
	}
	if len(orders) == 1 {
		conv.Payment.OrderID = orders[0].ID
		conv.Step = StepPaymentAmount
		b.states.Set(chatID, conv)
		b.reply(chatID, b.tr.T(lang, "payment.ask_amount"))
		return
	}
	b.replyWithMarkup(chatID, b.tr.T(lang, "menu.orders"), orderListKeyboard(orders))
}

func (b *Bot) stepPaymentAmount(chatID int64, lang, text string, conv *Conversation) {
	amount, err := parseNumber(text)
	if err != nil || amount <= 0 {
		b.reply(chatID, b.tr.T(lang, "error.invalid_amount"))
		return
	}
	conv.Payment.Amount = amount
	conv.Step = StepPaymentMethod
	b.states.Set(chatID, conv)
	b.replyWithMarkup(chatID, b.tr.T(lang, "payment.ask_amount"), methodKeyboard())
}

func (b *Bot) pickPaymentMethod(ctx context.Context, chatID int64, lang, method string, user *model.User) {
	conv := b.states.Get(chatID)
	if conv.Payment.OrderID == "" || conv.Payment.Amount <= 0 {
		return
	}
	payment, err := b.facade.RecordPayment(ctx, conv.Payment.OrderID, conv.Payment.Amount, time.Now(), model.PaymentMethod(method), user.ID)
	if err != nil {
		b.replyError(chatID, lang, err)
		return
	}
	b.states.Clear(chatID)
	b.reply(chatID, b.tr.T(lang, "payment.recorded", FormatMoney(payment.Amount)))
	b.showOrderCard(ctx, chatID, lang, conv.Payment.OrderID)
}

// Clients and products

func (b *Bot) startClient(chatID int64, lang string) {
	b.states.Set(chatID, &Conversation{Step: StepClientName})
	b.reply(chatID, b.tr.T(lang, "client.ask_name"))
}

func (b *Bot) startProduct(ctx context.Context, chatID int64, lang string) {
	b.states.Set(chatID, &Conversation{Step: StepProductName})
	b.reply(chatID, b.tr.T(lang, "order.ask_product"))
}

// parseNumber accepts both dot and comma decimal separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}
