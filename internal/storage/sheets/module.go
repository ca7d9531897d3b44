package sheets

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/dokonbot/dokonbot/internal/config"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
	"github.com/dokonbot/dokonbot/internal/lock"
)

// Module wires spreadsheet storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.OrderItemRepository { return s.OrderItems() },
		func(s *Storage) repository.PaymentRepository { return s.Payments() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.ClientRepository { return s.Clients() },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.AuditRepository { return s.Audit() },
		func(s *Storage) lock.Store { return NewLeaseStore(s) },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	service, err := NewService(p.Ctx, Config{
		SpreadsheetID:   p.Config.SpreadsheetID,
		CredentialsFile: p.Config.GoogleCredentialsFile,
		CredentialsJSON: p.Config.GoogleCredentialsJSON,
	})
	if err != nil {
		return nil, err
	}
	return NewStorage(service, p.Config.SpreadsheetID, p.Logger), nil
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return storage.Init(ctx)
		},
	})
}
