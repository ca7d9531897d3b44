package di

import (
	"go.uber.org/fx"

	"github.com/dokonbot/dokonbot/internal/app"
	"github.com/dokonbot/dokonbot/internal/config"
	"github.com/dokonbot/dokonbot/internal/i18n"
	"github.com/dokonbot/dokonbot/internal/lock"
	"github.com/dokonbot/dokonbot/internal/logger"
	"github.com/dokonbot/dokonbot/internal/server/http/router"
	"github.com/dokonbot/dokonbot/internal/storage/sheets"
	"github.com/dokonbot/dokonbot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		sheets.Module,
		lock.Module,
		i18n.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
