package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// UserRepository stores chat users allowed to operate the ledger.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	ListAll(ctx context.Context, activeOnly bool) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
}
