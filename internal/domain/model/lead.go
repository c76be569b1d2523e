package model

import (
	"errors"
	"strings"
	"time"
)

// LeadStatus tracks the outreach pipeline state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether the lead status is supported.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusWon, LeadStatusLost:
		return true
	default:
		return false
	}
}

func normalizeLeadStatus(v LeadStatus) LeadStatus {
	normalized := LeadStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return LeadStatusNew
	}
	return normalized
}

// Lead is a prospective client tracked by the outreach pipeline.
type Lead struct {
	ID        string     `json:"id"                db:"id"`
	Name      string     `json:"name"              db:"name"`
	Email     string     `json:"email"             db:"email"`
	Company   *string    `json:"company,omitempty" db:"company"`
	Source    *string    `json:"source,omitempty"  db:"source"`
	Status    LeadStatus `json:"status"            db:"status"`
	Notes     *string    `json:"notes,omitempty"   db:"notes"`
	CreatedAt time.Time  `json:"created_at"        db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"        db:"updated_at"`
}

// LeadListOptions controls paging and filtering for listing leads.
type LeadListOptions struct {
	Limit  int
	Offset int
	Status *LeadStatus // exact match
	Q      *string     // substring match on name or company (ILIKE)
}

// CreateLeadRequest represents parameters to create a Lead.
type CreateLeadRequest struct {
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Company *string    `json:"company,omitempty"`
	Source  *string    `json:"source,omitempty"`
	Status  LeadStatus `json:"status,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// UpdateLeadRequest represents parameters to update a Lead.
type UpdateLeadRequest struct {
	Name    *string     `json:"name,omitempty"`
	Email   *string     `json:"email,omitempty"`
	Company *string     `json:"company,omitempty"`
	Source  *string     `json:"source,omitempty"`
	Status  *LeadStatus `json:"status,omitempty"`
	Notes   *string     `json:"notes,omitempty"`
}

// Validate validates CreateLeadRequest.
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	r.Status = normalizeLeadStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateLeadRequest.
func (r *UpdateLeadRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Company != nil || r.Source != nil ||
		r.Status != nil || r.Notes != nil
}

// Validate validates UpdateLeadRequest.
func (r *UpdateLeadRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Status != nil {
		status := normalizeLeadStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
