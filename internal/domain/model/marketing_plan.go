package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// MarketingPlanStatus tracks the delivery state of a plan.
type MarketingPlanStatus string

const (
	MarketingPlanStatusDraft     MarketingPlanStatus = "draft"
	MarketingPlanStatusActive    MarketingPlanStatus = "active"
	MarketingPlanStatusCompleted MarketingPlanStatus = "completed"
)

// Valid reports whether the plan status is supported.
func (s MarketingPlanStatus) Valid() bool {
	switch s {
	case MarketingPlanStatusDraft, MarketingPlanStatusActive, MarketingPlanStatusCompleted:
		return true
	default:
		return false
	}
}

func normalizeMarketingPlanStatus(v MarketingPlanStatus) MarketingPlanStatus {
	normalized := MarketingPlanStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return MarketingPlanStatusDraft
	}
	return normalized
}

// MarketingPlan is a campaign plan for a client. Milestones is free-form JSON
// shaped by the back office UI.
type MarketingPlan struct {
	ID         string              `json:"id"                   db:"id"`
	ClientID   string              `json:"client_id"            db:"client_id"`
	Title      string              `json:"title"                db:"title"`
	Summary    *string             `json:"summary,omitempty"    db:"summary"`
	Status     MarketingPlanStatus `json:"status"               db:"status"`
	Milestones json.RawMessage     `json:"milestones,omitempty" db:"milestones"`
	StartsAt   *time.Time          `json:"starts_at,omitempty"  db:"starts_at"`
	EndsAt     *time.Time          `json:"ends_at,omitempty"    db:"ends_at"`
	CreatedAt  time.Time           `json:"created_at"           db:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"           db:"updated_at"`
}

// PlanWithClient is a plan row joined with the client it belongs to, used by
// the back-office listing.
type PlanWithClient struct {
	MarketingPlan
	ClientName string `json:"client_name" db:"client_name"`
}

// CreateMarketingPlanRequest represents parameters to create a MarketingPlan.
type CreateMarketingPlanRequest struct {
	ClientID   string              `json:"client_id"`
	Title      string              `json:"title"`
	Summary    *string             `json:"summary,omitempty"`
	Status     MarketingPlanStatus `json:"status,omitempty"`
	Milestones json.RawMessage     `json:"milestones,omitempty"`
	StartsAt   *time.Time          `json:"starts_at,omitempty"`
	EndsAt     *time.Time          `json:"ends_at,omitempty"`
}

// UpdateMarketingPlanRequest represents parameters to update a MarketingPlan.
type UpdateMarketingPlanRequest struct {
	Title      *string              `json:"title,omitempty"`
	Summary    *string              `json:"summary,omitempty"`
	Status     *MarketingPlanStatus `json:"status,omitempty"`
	Milestones json.RawMessage      `json:"milestones,omitempty"`
	StartsAt   *time.Time           `json:"starts_at,omitempty"`
	EndsAt     *time.Time           `json:"ends_at,omitempty"`
}

// Validate validates CreateMarketingPlanRequest.
func (r *CreateMarketingPlanRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	r.Status = normalizeMarketingPlanStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	if len(r.Milestones) > 0 && !json.Valid(r.Milestones) {
		return errors.New("milestones must be valid JSON")
	}
	if r.StartsAt != nil && r.EndsAt != nil && r.EndsAt.Before(*r.StartsAt) {
		return errors.New("ends_at cannot be before starts_at")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateMarketingPlanRequest.
func (r *UpdateMarketingPlanRequest) HasUpdates() bool {
	return r.Title != nil || r.Summary != nil || r.Status != nil ||
		len(r.Milestones) > 0 || r.StartsAt != nil || r.EndsAt != nil
}

// Validate validates UpdateMarketingPlanRequest.
func (r *UpdateMarketingPlanRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Status != nil {
		status := normalizeMarketingPlanStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	if len(r.Milestones) > 0 && !json.Valid(r.Milestones) {
		return errors.New("milestones must be valid JSON")
	}
	return nil
}
