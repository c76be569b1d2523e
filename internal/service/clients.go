package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ClientService orchestrates client CRUD for the back office.
type ClientService struct {
	clients core.ClientRepository
}

// NewClientService constructs a new ClientService.
func NewClientService(clients core.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// Create creates a client.
func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	return s.clients.Create(ctx, req)
}

// GetByID retrieves a client by ID.
func (s *ClientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// List returns a page of clients.
func (s *ClientService) List(ctx context.Context, limit, offset int) ([]*model.Client, error) {
	return s.clients.List(ctx, limit, offset)
}

// Update updates a client.
func (s *ClientService) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	return s.clients.Update(ctx, id, req)
}

// Delete deletes a client.
func (s *ClientService) Delete(ctx context.Context, id string) (bool, error) {
	return s.clients.Delete(ctx, id)
}
