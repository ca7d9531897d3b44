package repository

import (
	"context"

	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// ProductRepository stores the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	ListAll(ctx context.Context, activeOnly bool) ([]model.Product, error)
	Search(ctx context.Context, query string, activeOnly bool) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
}
