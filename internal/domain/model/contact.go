package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxContactMessageLen = 5000

// ContactSubmission is an inbound message from the public contact form.
type ContactSubmission struct {
	ID        string    `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Email     string    `json:"email"             db:"email"`
	Phone     *string   `json:"phone,omitempty"   db:"phone"`
	Company   *string   `json:"company,omitempty" db:"company"`
	Message   string    `json:"message"           db:"message"`
	Handled   bool      `json:"handled"           db:"handled"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
}

// CreateContactRequest represents a public contact form submission.
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Message string  `json:"message"`
}

// Validate validates CreateContactRequest.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	message := strings.TrimSpace(r.Message)
	if message == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(message) > maxContactMessageLen {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}
