package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// ClientRepository stores clients.
type ClientRepository interface {
	Create(ctx context.Context, client model.Client) (*model.Client, error)
	GetByID(ctx context.Context, clientID string) (*model.Client, error)
	ListAll(ctx context.Context, activeOnly bool) ([]model.Client, error)
	Search(ctx context.Context, query string, activeOnly bool) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
}
