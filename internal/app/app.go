package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/dokonbot/dokonbot/internal/bot"
	"github.com/dokonbot/dokonbot/internal/config"
	"github.com/dokonbot/dokonbot/internal/i18n"
	"github.com/dokonbot/dokonbot/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewLedgerFacade,
		newHTTPServer,
		newReconciler,
		newBotAPI,
		newBot,
		func(f *LedgerFacade) bot.Ledger { return f },
		func(f *LedgerFacade) worker.LedgerFacade { return f },
		func(api *tgbotapi.BotAPI) bot.API { return api },
		func() bot.StateStore { return bot.NewMemoryStateStore() },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade worker.LedgerFacade
	Config *config.Config
	Logger *slog.Logger
}

func newReconciler(p workerParams) *worker.Reconciler {
	return worker.NewReconciler(
		p.Facade,
		p.Config.ReconcileInterval,
		p.Config.ReconcileBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

func newBotAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(cfg.TelegramToken)
}

type botParams struct {
	fx.In

	API        bot.API
	Facade     bot.Ledger
	States     bot.StateStore
	Translator *i18n.Translator
	Logger     *slog.Logger
}

func newBot(p botParams) *bot.Bot {
	return bot.New(p.API, p.Facade, p.States, p.Translator, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.Reconciler
	Bot        *bot.Bot
	API        bot.API
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting dokonbot", slog.String("addr", p.Server.Addr))

			// Workers and polling outlive the start hook, so they run on
			// the process context rather than the hook's.
			p.Worker.Start(p.Ctx)

			if p.Config.WebhookURL != "" {
				wh, err := tgbotapi.NewWebhook(p.Config.WebhookURL)
				if err != nil {
					return err
				}
				if _, err := p.API.Request(wh); err != nil {
					return err
				}
			} else {
				go p.Bot.Run(p.Ctx)
			}

			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("dokonbot stopped")
			return nil
		},
	})
}
