package model

import (
	"errors"
	"strings"
	"time"
)

// CompanySettings holds agency-wide contact and branding details rendered on
// the public site. A single row exists; reads fall back to defaults before
// the first save.
type CompanySettings struct {
	CompanyName  string    `json:"company_name"            db:"company_name"`
	TagLine      *string   `json:"tag_line,omitempty"      db:"tag_line"`
	ContactEmail string    `json:"contact_email"           db:"contact_email"`
	Phone        *string   `json:"phone,omitempty"         db:"phone"`
	Address      *string   `json:"address,omitempty"       db:"address"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"  db:"linkedin_url"`
	InstagramURL *string   `json:"instagram_url,omitempty" db:"instagram_url"`
	UpdatedAt    time.Time `json:"updated_at"              db:"updated_at"`
}

// DefaultCompanySettings returns the settings served before any are saved.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName:  "Nardoni Digital",
		ContactEmail: "hello@nardonidigital.com",
	}
}

// UpdateCompanySettingsRequest represents parameters to update CompanySettings.
type UpdateCompanySettingsRequest struct {
	CompanyName  *string `json:"company_name,omitempty"`
	TagLine      *string `json:"tag_line,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	LinkedInURL  *string `json:"linkedin_url,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateCompanySettingsRequest.
func (r *UpdateCompanySettingsRequest) HasUpdates() bool {
	return r.CompanyName != nil || r.TagLine != nil || r.ContactEmail != nil ||
		r.Phone != nil || r.Address != nil || r.LinkedInURL != nil || r.InstagramURL != nil
}

// Validate validates UpdateCompanySettingsRequest.
func (r *UpdateCompanySettingsRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.CompanyName != nil && strings.TrimSpace(*r.CompanyName) == "" {
		return errors.New("company_name cannot be empty")
	}
	if r.ContactEmail != nil {
		if err := validateEmail(*r.ContactEmail); err != nil {
			return err
		}
	}
	return nil
}
