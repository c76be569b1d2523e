package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// PlanService orchestrates marketing plan CRUD.
type PlanService struct {
	plans core.PlanRepository
}

// NewPlanService constructs a new PlanService.
func NewPlanService(plans core.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// Create creates a plan.
func (s *PlanService) Create(ctx context.Context, req *model.CreateMarketingPlanRequest) (*model.MarketingPlan, error) {
	return s.plans.Create(ctx, req)
}

// GetByID retrieves a plan by ID.
func (s *PlanService) GetByID(ctx context.Context, id string) (*model.MarketingPlan, error) {
	return s.plans.GetByID(ctx, id)
}

// List returns plans across all clients, newest first, with client names.
func (s *PlanService) List(ctx context.Context, limit, offset int) ([]*model.PlanWithClient, error) {
	return s.plans.List(ctx, limit, offset)
}

// ListByClient returns a client's plans, newest first.
func (s *PlanService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.MarketingPlan, error) {
	return s.plans.ListByClient(ctx, clientID, limit, offset)
}

// Update updates a plan.
func (s *PlanService) Update(ctx context.Context, id string, req model.UpdateMarketingPlanRequest) (*model.MarketingPlan, error) {
	return s.plans.Update(ctx, id, req)
}

// Delete deletes a plan.
func (s *PlanService) Delete(ctx context.Context, id string) (bool, error) {
	return s.plans.Delete(ctx, id)
}
