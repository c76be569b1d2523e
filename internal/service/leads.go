package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// LeadService orchestrates outreach lead CRUD.
type LeadService struct {
	leads core.LeadRepository
}

// NewLeadService constructs a new LeadService.
func NewLeadService(leads core.LeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// Create creates a lead.
func (s *LeadService) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	return s.leads.Create(ctx, req)
}

// GetByID retrieves a lead by ID.
func (s *LeadService) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

// List returns leads with filters.
func (s *LeadService) List(ctx context.Context, opts model.LeadListOptions) ([]*model.Lead, error) {
	return s.leads.List(ctx, opts)
}

// Update updates a lead.
func (s *LeadService) Update(ctx context.Context, id string, req model.UpdateLeadRequest) (*model.Lead, error) {
	return s.leads.Update(ctx, id, req)
}

// Delete deletes a lead.
func (s *LeadService) Delete(ctx context.Context, id string) (bool, error) {
	return s.leads.Delete(ctx, id)
}
