package model

import (
	"errors"
	"strings"
	"time"
)

// TeamMember is a staff profile shown on the public site and managed in the
// back office. Creating, updating, and deleting members is restricted to
// super admins.
type TeamMember struct {
	ID        string    `json:"id"                  db:"id"`
	Name      string    `json:"name"                db:"name"`
	Title     string    `json:"title"               db:"title"`
	Email     *string   `json:"email,omitempty"     db:"email"`
	Bio       *string   `json:"bio,omitempty"       db:"bio"`
	PhotoURL  *string   `json:"photo_url,omitempty" db:"photo_url"`
	Visible   bool      `json:"visible"             db:"visible"`
	SortOrder int       `json:"sort_order"          db:"sort_order"`
	CreatedAt time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"          db:"updated_at"`
}

// CreateTeamMemberRequest represents parameters to create a TeamMember.
type CreateTeamMemberRequest struct {
	Name      string  `json:"name"`
	Title     string  `json:"title"`
	Email     *string `json:"email,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	Visible   *bool   `json:"visible,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// UpdateTeamMemberRequest represents parameters to update a TeamMember.
type UpdateTeamMemberRequest struct {
	Name      *string `json:"name,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	Visible   *bool   `json:"visible,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// Validate validates CreateTeamMemberRequest.
func (r *CreateTeamMemberRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateTeamMemberRequest.
func (r *UpdateTeamMemberRequest) HasUpdates() bool {
	return r.Name != nil || r.Title != nil || r.Email != nil || r.Bio != nil ||
		r.PhotoURL != nil || r.Visible != nil || r.SortOrder != nil
}

// Validate validates UpdateTeamMemberRequest.
func (r *UpdateTeamMemberRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	return nil
}
