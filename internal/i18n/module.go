package i18n

import (
	"go.uber.org/fx"

	"github.com/dokonbot/dokonbot/internal/config"
)

// Module wires the translator for dependency injection.
var Module = fx.Provide(func(cfg *config.Config) *Translator {
	return New(cfg.DefaultLanguage)
})
