package lock

import (
	"go.uber.org/fx"

	"github.com/dokonbot/dokonbot/internal/config"
)

// Module wires the lease manager for dependency injection.
var Module = fx.Provide(newLocker)

type lockerParams struct {
	fx.In

	Store  Store
	Config *config.Config
}

func newLocker(p lockerParams) Locker {
	return NewManager(p.Store, p.Config.InstanceID, p.Config.LockTTL, p.Config.LockAttempts, p.Config.LockBackoff)
}
