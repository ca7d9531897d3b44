package sheets

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

func encodeProduct(product model.Product) []interface{} {
	return []interface{}{
		product.ID,
		product.Name,
		product.DefaultPrice,
		product.StockQty,
		formatBool(product.Active),
		formatTime(product.CreatedAt),
		formatTime(product.UpdatedAt),
	}
}

func decodeProduct(row []interface{}) model.Product {
	return model.Product{
		ID:           cellString(row, 0),
		Name:         cellString(row, 1),
		DefaultPrice: cellFloat(row, 2),
		StockQty:     cellFloat(row, 3),
		Active:       cellBool(row, 4),
		CreatedAt:    cellTime(row, 5),
		UpdatedAt:    cellTime(row, 6),
	}
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	now := time.Now()
	product.ID = newID(prefixProduct)
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := r.storage.appendRow(ctx, tabProducts, encodeProduct(product)); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	_, row, found, err := r.storage.findRow(ctx, tabProducts, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	product := decodeProduct(row)
	return &product, nil
}

func (r *productRepository) ListAll(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	rows, err := r.storage.allRows(ctx, tabProducts)
	if err != nil {
		return nil, err
	}
	var result []model.Product
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		product := decodeProduct(row)
		if activeOnly && !product.Active {
			continue
		}
		result = append(result, product)
	}
	return result, nil
}

func (r *productRepository) Search(ctx context.Context, query string, activeOnly bool) ([]model.Product, error) {
	products, err := r.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var result []model.Product
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), q) {
			result = append(result, product)
		}
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabProducts, product.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	return r.storage.updateRow(ctx, tabProducts, rowNum, encodeProduct(*product))
}
