package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus tracks the billing lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// Valid reports whether the invoice status is supported.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid:
		return true
	default:
		return false
	}
}

func normalizeInvoiceStatus(v InvoiceStatus) InvoiceStatus {
	normalized := InvoiceStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return InvoiceStatusDraft
	}
	return normalized
}

// InvoiceItem is a single billable line on an invoice.
// Amounts are stored in cents to avoid float arithmetic.
type InvoiceItem struct {
	ID              string `json:"id"               db:"id"`
	InvoiceID       string `json:"invoice_id"       db:"invoice_id"`
	Description     string `json:"description"      db:"description"`
	Quantity        int    `json:"quantity"         db:"quantity"`
	UnitAmountCents int64  `json:"unit_amount_cents" db:"unit_amount_cents"`
}

// TotalCents returns quantity times unit amount.
func (i InvoiceItem) TotalCents() int64 {
	return int64(i.Quantity) * i.UnitAmountCents
}

// Invoice is a bill issued to a client. Items are loaded alongside it.
type Invoice struct {
	ID        string        `json:"id"                 db:"id"`
	ClientID  string        `json:"client_id"          db:"client_id"`
	Number    string        `json:"number"             db:"number"`
	Status    InvoiceStatus `json:"status"             db:"status"`
	Currency  string        `json:"currency"           db:"currency"`
	DueAt     *time.Time    `json:"due_at,omitempty"   db:"due_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"  db:"paid_at"`
	CreatedAt time.Time     `json:"created_at"         db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"         db:"updated_at"`

	Items []InvoiceItem `json:"items,omitempty" db:"-"`
}

// TotalCents sums all item totals.
func (inv Invoice) TotalCents() int64 {
	var total int64
	for _, item := range inv.Items {
		total += item.TotalCents()
	}
	return total
}

// InvoiceWithClient is an invoice row joined with the client it bills,
// used by the back-office listing.
type InvoiceWithClient struct {
	Invoice
	ClientName string `json:"client_name" db:"client_name"`
}

// CreateInvoiceItemRequest is a line item on a new invoice.
type CreateInvoiceItemRequest struct {
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	UnitAmountCents int64  `json:"unit_amount_cents"`
}

// CreateInvoiceRequest represents parameters to create an Invoice with its items.
type CreateInvoiceRequest struct {
	ClientID string                     `json:"client_id"`
	Number   string                     `json:"number"`
	Currency string                     `json:"currency,omitempty"`
	DueAt    *time.Time                 `json:"due_at,omitempty"`
	Items    []CreateInvoiceItemRequest `json:"items"`
}

// UpdateInvoiceStatusRequest moves an invoice through its lifecycle.
type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status"`
}

// Validate validates CreateInvoiceRequest.
func (r *CreateInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if strings.TrimSpace(r.Number) == "" {
		return errors.New("number is required and cannot be empty")
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if len(r.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	r.Currency = strings.ToUpper(r.Currency)
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, item := range r.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("item %d: description is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be > 0", i)
		}
		if item.UnitAmountCents < 0 {
			return fmt.Errorf("item %d: unit_amount_cents cannot be negative", i)
		}
	}
	return nil
}

// Validate validates UpdateInvoiceStatusRequest.
func (r *UpdateInvoiceStatusRequest) Validate() error {
	r.Status = normalizeInvoiceStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}
