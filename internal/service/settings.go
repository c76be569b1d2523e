package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// SettingsService manages the agency-wide settings row.
type SettingsService struct {
	settings core.SettingsRepository
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(settings core.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the current settings, falling back to defaults before the
// first save.
func (s *SettingsService) Get(ctx context.Context) (*model.CompanySettings, error) {
	return s.settings.Get(ctx)
}

// Update applies a partial update to the settings.
func (s *SettingsService) Update(ctx context.Context, req model.UpdateCompanySettingsRequest) (*model.CompanySettings, error) {
	return s.settings.Update(ctx, req)
}
