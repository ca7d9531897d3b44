package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
	"github.com/dokonbot/dokonbot/internal/domain/repository"
)

// ClientUpdate carries optional field changes for a client.
type ClientUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	Active  *bool
}

// ClientUseCase manages the client directory.
type ClientUseCase struct {
	clients repository.ClientRepository
	orders  repository.OrderRepository
}

// NewClientUseCase constructs ClientUseCase.
func NewClientUseCase(clients repository.ClientRepository, orders repository.OrderRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients, orders: orders}
}

// Create registers a new active client.
func (u *ClientUseCase) Create(ctx context.Context, name, phone, address string) (*model.Client, error) {
	if name == "" {
		return nil, domainErrors.ErrEmptyName
	}
	return u.clients.Create(ctx, model.Client{
		Name:    name,
		Phone:   phone,
		Address: address,
		Active:  true,
	})
}

// GetByID fetches one client.
func (u *ClientUseCase) GetByID(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// Update applies the provided field changes.
func (u *ClientUseCase) Update(ctx context.Context, clientID string, changes ClientUpdate) (*model.Client, error) {
	client, err := u.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		client.Name = *changes.Name
	}
	if changes.Phone != nil {
		client.Phone = *changes.Phone
	}
	if changes.Address != nil {
		client.Address = *changes.Address
	}
	if changes.Active != nil {
		client.Active = *changes.Active
	}

	if err := u.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Search returns active clients matching the query. Queries shorter than two
// characters return no results.
func (u *ClientUseCase) Search(ctx context.Context, query string) ([]model.Client, error) {
	if len([]rune(query)) < 2 {
		return nil, nil
	}
	return u.clients.Search(ctx, query, true)
}

// ListAll returns clients, optionally restricted to active ones.
func (u *ClientUseCase) ListAll(ctx context.Context, activeOnly bool) ([]model.Client, error) {
	return u.clients.ListAll(ctx, activeOnly)
}
