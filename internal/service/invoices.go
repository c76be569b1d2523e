package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// InvoiceService orchestrates invoice CRUD for the back office and the
// client portal's read-only views.
type InvoiceService struct {
	invoices core.InvoiceRepository
}

// NewInvoiceService constructs a new InvoiceService.
func NewInvoiceService(invoices core.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices}
}

// Create creates an invoice with its line items.
func (s *InvoiceService) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	return s.invoices.Create(ctx, req)
}

// GetByID retrieves an invoice with its items.
func (s *InvoiceService) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// ListByClient returns a client's invoices, newest first.
func (s *InvoiceService) List(ctx context.Context, limit, offset int) ([]*model.InvoiceWithClient, error) {
	return s.invoices.List(ctx, limit, offset)
}

func (s *InvoiceService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Invoice, error) {
	return s.invoices.ListByClient(ctx, clientID, limit, offset)
}

// UpdateStatus moves an invoice through its lifecycle.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, req model.UpdateInvoiceStatusRequest) (*model.Invoice, error) {
	return s.invoices.UpdateStatus(ctx, id, req)
}

// Delete deletes an invoice and its items.
func (s *InvoiceService) Delete(ctx context.Context, id string) (bool, error) {
	return s.invoices.Delete(ctx, id)
}
