package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/i18n"
)

// Callback data is "noun:verb:id"; ids never contain ':'.
const (
	cbOrderView     = "order:view"
	cbOrderCancel   = "order:cancel"
	cbOrderRestore  = "order:restore"
	cbOrderPay      = "order:pay"
	cbOrderItems    = "order:items"
	cbOrderDiscount = "order:discount"
	cbItemEdit      = "item:edit"
	cbItemDelete    = "item:delete"
	cbClientPick    = "client:pick"
	cbProductPick   = "product:pick"
	cbDraftDone     = "draft:done"
	cbDraftMore     = "draft:more"
	cbDiscountPick  = "discount:pick"
	cbMethodPick    = "method:pick"
)

func callbackData(action, id string) string {
	return action + ":" + id
}

func parseCallback(data string) (action, id string) {
	if i := strings.LastIndex(data, ":"); i > 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

func mainMenuKeyboard(tr *i18n.Translator, lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr.T(lang, "menu.orders")),
			tgbotapi.NewKeyboardButton(tr.T(lang, "menu.payments")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr.T(lang, "menu.clients")),
			tgbotapi.NewKeyboardButton(tr.T(lang, "menu.products")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(tr.T(lang, "menu.reports")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func orderActionsKeyboard(tr *i18n.Translator, lang string, order *model.Order) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch order.Status {
	case model.OrderStatusOpen:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr.T(lang, "menu.payments"), callbackData(cbOrderPay, order.ID)),
			tgbotapi.NewInlineKeyboardButtonData("%", callbackData(cbOrderDiscount, order.ID)),
		))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr.T(lang, "menu.products"), callbackData(cbOrderItems, order.ID)),
			tgbotapi.NewInlineKeyboardButtonData(tr.T(lang, "menu.cancel"), callbackData(cbOrderCancel, order.ID)),
		))
	case model.OrderStatusCompleted:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tr.T(lang, "order.restored"), callbackData(cbOrderRestore, order.ID)),
			tgbotapi.NewInlineKeyboardButtonData(tr.T(lang, "menu.cancel"), callbackData(cbOrderCancel, order.ID)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func orderListKeyboard(orders []model.Order) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, order := range orders {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(orderLine(order), callbackData(cbOrderView, order.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func orderItemsKeyboard(items []model.OrderItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		label := fmt.Sprintf("%s × %s", item.ProductName, formatQty(item.Qty))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbItemEdit, item.ID)),
			tgbotapi.NewInlineKeyboardButtonData("✕", callbackData(cbItemDelete, item.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func clientPickKeyboard(clients []model.Client) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, client := range clients {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(client.Name, callbackData(cbClientPick, client.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func productPickKeyboard(products []model.Product) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, product := range products {
		label := fmt.Sprintf("%s (%s)", product.Name, FormatMoney(product.DefaultPrice))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbProductPick, product.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func draftKeyboard(tr *i18n.Translator, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("+", callbackData(cbDraftMore, "_")),
			tgbotapi.NewInlineKeyboardButtonData("OK", callbackData(cbDraftDone, "_")),
		),
	)
}

func discountKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("0%", callbackData(cbDiscountPick, "none")),
			tgbotapi.NewInlineKeyboardButtonData("%", callbackData(cbDiscountPick, "percent")),
			tgbotapi.NewInlineKeyboardButtonData("∑", callbackData(cbDiscountPick, "fixed")),
		),
	)
}

func methodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("CASH", callbackData(cbMethodPick, string(model.PaymentCash))),
			tgbotapi.NewInlineKeyboardButtonData("CARD", callbackData(cbMethodPick, string(model.PaymentCard))),
			tgbotapi.NewInlineKeyboardButtonData("TRANSFER", callbackData(cbMethodPick, string(model.PaymentTransfer))),
		),
	)
}
