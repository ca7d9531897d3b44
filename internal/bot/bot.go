package bot

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/i18n"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

// Ledger exposes the subset of application functionality the chat interface
// needs.
type Ledger interface {
	AuthorizeUser(ctx context.Context, chatUserID string) (*model.User, error)
	SetUserLanguage(ctx context.Context, chatUserID, lang string) error

	CreateOrder(ctx context.Context, clientID string, orderDate time.Time, items []usecase.OrderItemInput, discount model.Discount, actor string) (*model.Order, []model.OrderItem, error)
	Order(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error)
	UpdateOrderDiscount(ctx context.Context, orderID string, discount model.Discount, actor string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, actor string) (*model.Order, error)
	RestoreOrder(ctx context.Context, orderID, actor string) (*model.Order, error)
	UpdateOrderItemQty(ctx context.Context, orderID, itemID string, qty float64, actor string) (*model.Order, error)
	DeleteOrderItem(ctx context.Context, orderID, itemID, actor string) (*model.Order, error)
	OpenOrders(ctx context.Context) ([]model.Order, error)
	RecentCompletedOrders(ctx context.Context, limit int) ([]model.Order, error)
	SearchOrders(ctx context.Context, query string, sortBy usecase.OrderSort) ([]model.Order, error)

	RecordPayment(ctx context.Context, orderID string, amount float64, paymentDate time.Time, method model.PaymentMethod, actor string) (*model.Payment, error)

	Client(ctx context.Context, clientID string) (*model.Client, error)
	CreateClient(ctx context.Context, name, phone, address string) (*model.Client, error)
	SearchClients(ctx context.Context, query string) ([]model.Client, error)

	Product(ctx context.Context, productID string) (*model.Product, error)
	CreateProduct(ctx context.Context, name string, defaultPrice, stockQty float64) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)

	ClientsWithDebt(ctx context.Context) ([]usecase.ClientDebt, error)
	ClientsWithOpenOrders(ctx context.Context) ([]usecase.ClientWithOpenOrders, error)
}

// API is the Telegram transport surface the bot depends on.
// *tgbotapi.BotAPI satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot routes Telegram updates into the ledger facade.
type Bot struct {
	api    API
	facade Ledger
	states StateStore
	tr     *i18n.Translator
	log    *slog.Logger
}

// New constructs the bot.
func New(api API, facade Ledger, states StateStore, tr *i18n.Translator, log *slog.Logger) *Bot {
	return &Bot{
		api:    api,
		facade: facade,
		states: states,
		tr:     tr,
		log:    log.With("component", "bot"),
	}
}

// Run consumes updates via long polling until the context is cancelled.
// Not used when a webhook is configured.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one update. It is the single entry point for both
// polling and webhook delivery.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic while handling update", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, ok := b.authorize(ctx, msg.From)
	if !ok {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}
	b.handleText(ctx, msg, user)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	user, ok := b.authorize(ctx, cq.From)
	if !ok {
		return
	}

	// Acknowledge immediately so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn("answer callback failed", "error", err.Error())
	}

	if cq.Message == nil {
		return
	}
	b.dispatchCallback(ctx, cq.Message.Chat.ID, cq.Data, user)
}

// authorize resolves and gates the chat user. Unknown senders are ignored,
// not answered, so the bot stays silent toward strangers.
func (b *Bot) authorize(ctx context.Context, from *tgbotapi.User) (*model.User, bool) {
	if from == nil {
		return nil, false
	}
	user, err := b.facade.AuthorizeUser(ctx, strconv.FormatInt(from.ID, 10))
	if err != nil {
		b.log.Info("rejected unauthorized sender", "from", from.ID)
		return nil, false
	}
	return user, true
}

func (b *Bot) lang(user *model.User) string {
	if user.Language != "" {
		return user.Language
	}
	return b.tr.DefaultLang()
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error("send message failed", "error", err.Error())
	}
}

func (b *Bot) replyError(chatID int64, lang string, err error) {
	b.reply(chatID, b.tr.ErrorMessage(lang, err))
}
