package sheets

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

type clientRepository struct {
	storage *Storage
}

func encodeClient(client model.Client) []interface{} {
	return []interface{}{
		client.ID,
		client.Name,
		client.Phone,
		client.Address,
		formatBool(client.Active),
		formatTime(client.CreatedAt),
		formatTime(client.UpdatedAt),
	}
}

func decodeClient(row []interface{}) model.Client {
	return model.Client{
		ID:        cellString(row, 0),
		Name:      cellString(row, 1),
		Phone:     cellString(row, 2),
		Address:   cellString(row, 3),
		Active:    cellBool(row, 4),
		CreatedAt: cellTime(row, 5),
		UpdatedAt: cellTime(row, 6),
	}
}

func (r *clientRepository) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	now := time.Now()
	client.ID = newID(prefixClient)
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := r.storage.appendRow(ctx, tabClients, encodeClient(client)); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByID(ctx context.Context, clientID string) (*model.Client, error) {
	_, row, found, err := r.storage.findRow(ctx, tabClients, clientID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	client := decodeClient(row)
	return &client, nil
}

func (r *clientRepository) ListAll(ctx context.Context, activeOnly bool) ([]model.Client, error) {
	rows, err := r.storage.allRows(ctx, tabClients)
	if err != nil {
		return nil, err
	}
	var result []model.Client
	for _, row := range rows {
		if cellString(row, 0) == "" {
			continue
		}
		client := decodeClient(row)
		if activeOnly && !client.Active {
			continue
		}
		result = append(result, client)
	}
	return result, nil
}

func (r *clientRepository) Search(ctx context.Context, query string, activeOnly bool) ([]model.Client, error) {
	clients, err := r.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var result []model.Client
	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.Name), q) ||
			strings.Contains(client.Phone, query) {
			result = append(result, client)
		}
	}
	return result, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	rowNum, _, found, err := r.storage.findRow(ctx, tabClients, client.ID)
	if err != nil {
		return err
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	client.UpdatedAt = time.Now()
	return r.storage.updateRow(ctx, tabClients, rowNum, encodeClient(*client))
}
