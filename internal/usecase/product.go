package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
)

// ProductUpdate carries optional field changes for a product.
type ProductUpdate struct {
	Name         *string
	DefaultPrice *float64
	StockQty     *float64
	Active       *bool
}

// ProductUseCase manages the product catalog.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create registers a new active product.
func (u *ProductUseCase) Create(ctx context.Context, name string, defaultPrice, stockQty float64) (*model.Product, error) {
	if name == "" {
		return nil, domainErrors.ErrEmptyName
	}
	if defaultPrice < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.products.Create(ctx, model.Product{
		Name:         name,
		DefaultPrice: defaultPrice,
		StockQty:     stockQty,
		Active:       true,
	})
}

// GetByID fetches one product.
func (u *ProductUseCase) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Update applies the provided field changes.
func (u *ProductUseCase) Update(ctx context.Context, productID string, changes ProductUpdate) (*model.Product, error) {
	product, err := u.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		product.Name = *changes.Name
	}
	if changes.DefaultPrice != nil {
		if *changes.DefaultPrice < 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
		product.DefaultPrice = *changes.DefaultPrice
	}
	if changes.StockQty != nil {
		product.StockQty = *changes.StockQty
	}
	if changes.Active != nil {
		product.Active = *changes.Active
	}

	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Deactivate hides a product from new orders without removing it.
func (u *ProductUseCase) Deactivate(ctx context.Context, productID string) (*model.Product, error) {
	inactive := false
	return u.Update(ctx, productID, ProductUpdate{Active: &inactive})
}

// Search returns active products matching the query. Queries shorter than two
// characters return no results.
func (u *ProductUseCase) Search(ctx context.Context, query string) ([]model.Product, error) {
	if len([]rune(query)) < 2 {
		return nil, nil
	}
	return u.products.Search(ctx, query, true)
}

// ListAll returns products, optionally restricted to active ones.
func (u *ProductUseCase) ListAll(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	return u.products.ListAll(ctx, activeOnly)
}
