package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNameLen = 255

// ClientStatus tracks whether a client engagement is ongoing.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Valid reports whether the client status is supported.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusActive, ClientStatusArchived:
		return true
	default:
		return false
	}
}

func normalizeClientStatus(v ClientStatus) ClientStatus {
	normalized := ClientStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return ClientStatusActive
	}
	return normalized
}

// Client represents a company the agency works with.
// AuthUserID links the client to its portal login identity, when one exists.
type Client struct {
	ID           string       `json:"id"                      db:"id"`
	Name         string       `json:"name"                    db:"name"`
	ContactEmail string       `json:"contact_email"           db:"contact_email"`
	Phone        *string      `json:"phone,omitempty"         db:"phone"`
	Website      *string      `json:"website,omitempty"       db:"website"`
	AuthUserID   *string      `json:"auth_user_id,omitempty"  db:"auth_user_id"`
	Status       ClientStatus `json:"status"                  db:"status"`
	Notes        *string      `json:"notes,omitempty"         db:"notes"`
	CreatedAt    time.Time    `json:"created_at"              db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"              db:"updated_at"`
}

// CreateClientRequest represents parameters to create a Client.
type CreateClientRequest struct {
	Name         string       `json:"name"`
	ContactEmail string       `json:"contact_email"`
	Phone        *string      `json:"phone,omitempty"`
	Website      *string      `json:"website,omitempty"`
	AuthUserID   *string      `json:"auth_user_id,omitempty"`
	Status       ClientStatus `json:"status,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
}

// UpdateClientRequest represents parameters to update a Client.
type UpdateClientRequest struct {
	Name         *string       `json:"name,omitempty"`
	ContactEmail *string       `json:"contact_email,omitempty"`
	Phone        *string       `json:"phone,omitempty"`
	Website      *string       `json:"website,omitempty"`
	AuthUserID   *string       `json:"auth_user_id,omitempty"`
	Status       *ClientStatus `json:"status,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
}

// Validate validates CreateClientRequest.
func (r *CreateClientRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if err := validateEmail(r.ContactEmail); err != nil {
		return err
	}
	r.Status = normalizeClientStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateClientRequest.
func (r *UpdateClientRequest) HasUpdates() bool {
	return r.Name != nil || r.ContactEmail != nil || r.Phone != nil || r.Website != nil ||
		r.AuthUserID != nil || r.Status != nil || r.Notes != nil
}

// Validate validates UpdateClientRequest, ensuring at least one field is set and values are sane.
func (r *UpdateClientRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.ContactEmail != nil {
		if err := validateEmail(*r.ContactEmail); err != nil {
			return err
		}
	}
	if r.Status != nil {
		status := normalizeClientStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}

// validateEmail performs a minimal structural check. Real deliverability is
// the identity provider's problem, not ours.
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email is not valid")
	}
	return nil
}
