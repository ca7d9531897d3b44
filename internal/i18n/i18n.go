package i18n

import (
	"errors"
	"fmt"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
)

// Supported interface languages.
const (
	LangUzbek   = "uz"
	LangEnglish = "en"
)

// Translator resolves message keys to one of the supported languages,
// falling back to the default language and then to the key itself.
type Translator struct {
	defaultLang string
}

// New constructs a translator. Unknown default languages fall back to Uzbek.
func New(defaultLang string) *Translator {
	if _, ok := catalog[defaultLang]; !ok {
		defaultLang = LangUzbek
	}
	return &Translator{defaultLang: defaultLang}
}

// DefaultLang returns the configured fallback language.
func (t *Translator) DefaultLang() string {
	return t.defaultLang
}

// T resolves key in lang, formatting args into the message.
func (t *Translator) T(lang, key string, args ...any) string {
	messages, ok := catalog[lang]
	if !ok {
		messages = catalog[t.defaultLang]
	}
	msg, ok := messages[key]
	if !ok {
		if msg, ok = catalog[t.defaultLang][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ErrorMessage maps a domain error to a user-facing message in lang.
// Unrecognized errors map to a generic failure message.
func (t *Translator) ErrorMessage(lang string, err error) string {
	for sentinel, key := range errorKeys {
		if errors.Is(err, sentinel) {
			return t.T(lang, key)
		}
	}
	return t.T(lang, "error.generic")
}

var errorKeys = map[error]string{
	domainErrors.ErrOrderNotFound:             "error.order_not_found",
	domainErrors.ErrClientNotFound:            "error.client_not_found",
	domainErrors.ErrProductNotFound:           "error.product_not_found",
	domainErrors.ErrProductInactive:           "error.product_inactive",
	domainErrors.ErrPaymentNotFound:           "error.payment_not_found",
	domainErrors.ErrOrderItemNotFound:         "error.item_not_found",
	domainErrors.ErrOrderAlreadyCancelled:     "error.already_cancelled",
	domainErrors.ErrCannotEditCancelled:       "error.cannot_edit_cancelled",
	domainErrors.ErrCannotRestoreNonCompleted: "error.cannot_restore",
	domainErrors.ErrEmptyName:                 "error.empty_name",
	domainErrors.ErrInvalidQty:                "error.invalid_qty",
	domainErrors.ErrInvalidAmount:             "error.invalid_amount",
	domainErrors.ErrInvalidDiscount:           "error.invalid_discount",
	domainErrors.ErrEmptyOrder:                "error.empty_order",
	domainErrors.ErrLockTimeout:               "error.busy",
}

var catalog = map[string]map[string]string{
	LangUzbek: {
		"menu.main":          "Asosiy menyu",
		"menu.orders":        "Buyurtmalar",
		"menu.payments":      "To'lovlar",
		"menu.clients":       "Mijozlar",
		"menu.products":      "Mahsulotlar",
		"menu.reports":       "Hisobotlar",
		"menu.back":          "Orqaga",
		"menu.cancel":        "Bekor qilish",
		"order.created":      "Buyurtma yaratildi: %s",
		"order.cancelled":    "Buyurtma bekor qilindi: %s",
		"order.restored":     "Buyurtma qayta ochildi: %s",
		"order.updated":      "Buyurtma yangilandi: %s",
		"order.not_found":    "Buyurtma topilmadi",
		"order.overpaid":     "Diqqat: ortiqcha to'lov %s",
		"order.ask_client":   "Mijozni tanlang yoki ism yozing",
		"order.ask_product":  "Mahsulotni tanlang",
		"order.ask_qty":      "Miqdorni kiriting",
		"order.ask_discount": "Chegirma turini tanlang",
		"payment.recorded":   "To'lov qayd etildi: %s",
		"payment.deleted":    "To'lov o'chirildi",
		"payment.ask_amount": "To'lov summasini kiriting",
		"client.created":     "Mijoz qo'shildi: %s",
		"client.ask_name":    "Mijoz ismini kiriting",
		"product.created":    "Mahsulot qo'shildi: %s",
		"report.debtors":     "Qarzdor mijozlar",
		"report.open":        "Ochiq buyurtmalar",
		"status.OPEN":        "OCHIQ",
		"status.COMPLETED":   "YAKUNLANGAN",
		"status.CANCELLED":   "BEKOR QILINGAN",

		"error.generic":               "Xatolik yuz berdi, qayta urinib ko'ring",
		"error.order_not_found":       "Buyurtma topilmadi",
		"error.client_not_found":      "Mijoz topilmadi",
		"error.product_not_found":     "Mahsulot topilmadi",
		"error.product_inactive":      "Mahsulot sotuvda emas",
		"error.payment_not_found":     "To'lov topilmadi",
		"error.item_not_found":        "Buyurtma qatori topilmadi",
		"error.already_cancelled":     "Buyurtma allaqachon bekor qilingan",
		"error.cannot_edit_cancelled": "Bekor qilingan buyurtmani o'zgartirib bo'lmaydi",
		"error.cannot_restore":        "Faqat yakunlangan buyurtmani qayta ochish mumkin",
		"error.empty_name":            "Ism bo'sh bo'lishi mumkin emas",
		"error.invalid_qty":           "Miqdor noldan katta bo'lishi kerak",
		"error.invalid_amount":        "Summa noldan katta bo'lishi kerak",
		"error.invalid_discount":      "Chegirma qiymati noto'g'ri",
		"error.empty_order":           "Buyurtmada kamida bitta mahsulot bo'lishi kerak",
		"error.busy":                  "Buyurtma band, birozdan keyin urinib ko'ring",
	},
	LangEnglish: {
		"menu.main":          "Main menu",
		"menu.orders":        "Orders",
		"menu.payments":      "Payments",
		"menu.clients":       "Clients",
		"menu.products":      "Products",
		"menu.reports":       "Reports",
		"menu.back":          "Back",
		"menu.cancel":        "Cancel",
		"order.created":      "Order created: %s",
		"order.cancelled":    "Order cancelled: %s",
		"order.restored":     "Order reopened: %s",
		"order.updated":      "Order updated: %s",
		"order.not_found":    "Order not found",
		"order.overpaid":     "Note: overpaid by %s",
		"order.ask_client":   "Pick a client or type a name",
		"order.ask_product":  "Pick a product",
		"order.ask_qty":      "Enter the quantity",
		"order.ask_discount": "Pick a discount type",
		"payment.recorded":   "Payment recorded: %s",
		"payment.deleted":    "Payment deleted",
		"payment.ask_amount": "Enter the payment amount",
		"client.created":     "Client added: %s",
		"client.ask_name":    "Enter the client name",
		"product.created":    "Product added: %s",
		"report.debtors":     "Clients with debt",
		"report.open":        "Open orders",
		"status.OPEN":        "OPEN",
		"status.COMPLETED":   "COMPLETED",
		"status.CANCELLED":   "CANCELLED",

		"error.generic":               "Something went wrong, please try again",
		"error.order_not_found":       "Order not found",
		"error.client_not_found":      "Client not found",
		"error.product_not_found":     "Product not found",
		"error.product_inactive":      "Product is not on sale",
		"error.payment_not_found":     "Payment not found",
		"error.item_not_found":        "Order line not found",
		"error.already_cancelled":     "Order is already cancelled",
		"error.cannot_edit_cancelled": "Cancelled orders cannot be edited",
		"error.cannot_restore":        "Only completed orders can be reopened",
		"error.empty_name":            "Name must not be empty",
		"error.invalid_qty":           "Quantity must be greater than zero",
		"error.invalid_amount":        "Amount must be greater than zero",
		"error.invalid_discount":      "Invalid discount value",
		"error.empty_order":           "An order needs at least one product",
		"error.busy":                  "Order is busy, try again in a moment",
	},
}
