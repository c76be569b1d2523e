package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// TeamService manages team member profiles. Write operations are routed
// through super-admin gated endpoints at the HTTP layer.
type TeamService struct {
	team core.TeamRepository
}

// NewTeamService constructs a new TeamService.
func NewTeamService(team core.TeamRepository) *TeamService {
	return &TeamService{team: team}
}

// Create creates a team member.
func (s *TeamService) Create(ctx context.Context, req *model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	return s.team.Create(ctx, req)
}

// GetByID retrieves a team member by ID.
func (s *TeamService) GetByID(ctx context.Context, id string) (*model.TeamMember, error) {
	return s.team.GetByID(ctx, id)
}

// ListVisible returns members shown on the public site.
func (s *TeamService) ListVisible(ctx context.Context) ([]*model.TeamMember, error) {
	return s.team.List(ctx, false)
}

// ListAll returns all members for the back office.
func (s *TeamService) ListAll(ctx context.Context) ([]*model.TeamMember, error) {
	return s.team.List(ctx, true)
}

// Update updates a team member.
func (s *TeamService) Update(ctx context.Context, id string, req model.UpdateTeamMemberRequest) (*model.TeamMember, error) {
	return s.team.Update(ctx, id, req)
}

// Delete deletes a team member.
func (s *TeamService) Delete(ctx context.Context, id string) (bool, error) {
	return s.team.Delete(ctx, id)
}
