package service

import (
	"context"
	"errors"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ErrNoLinkedClient is returned when a portal user has no client record
// linked to their login identity.
var ErrNoLinkedClient = errors.New("no client linked to this account")

// PortalServiceOptions groups dependencies for PortalService.
type PortalServiceOptions struct {
	Clients   core.ClientRepository
	Invoices  core.InvoiceRepository
	Plans     core.PlanRepository
	Documents core.DocumentRepository
}

// PortalService serves the client portal: every read is scoped to the
// client linked to the authenticated user, never to a caller-supplied ID.
type PortalService struct {
	clients   core.ClientRepository
	invoices  core.InvoiceRepository
	plans     core.PlanRepository
	documents core.DocumentRepository
}

// NewPortalService constructs a new PortalService.
func NewPortalService(opts PortalServiceOptions) *PortalService {
	return &PortalService{
		clients:   opts.Clients,
		invoices:  opts.Invoices,
		plans:     opts.Plans,
		documents: opts.Documents,
	}
}

// ClientFor resolves the client record linked to the given login identity.
func (s *PortalService) ClientFor(ctx context.Context, authUserID string) (*model.Client, error) {
	client, err := s.clients.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, ErrNoLinkedClient
	}
	return client, nil
}

// Invoices returns the linked client's invoices.
func (s *PortalService) Invoices(ctx context.Context, authUserID string, limit, offset int) ([]*model.Invoice, error) {
	client, err := s.ClientFor(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.invoices.ListByClient(ctx, client.ID, limit, offset)
}

// Plans returns the linked client's marketing plans.
func (s *PortalService) Plans(ctx context.Context, authUserID string, limit, offset int) ([]*model.MarketingPlan, error) {
	client, err := s.ClientFor(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.plans.ListByClient(ctx, client.ID, limit, offset)
}

// Documents returns the linked client's document metadata.
func (s *PortalService) Documents(ctx context.Context, authUserID string, limit, offset int) ([]*model.Document, error) {
	client, err := s.ClientFor(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.documents.ListByClient(ctx, client.ID, limit, offset)
}

// OwnsDocument reports whether the document belongs to the linked client.
func (s *PortalService) OwnsDocument(ctx context.Context, authUserID, documentID string) (bool, error) {
	client, err := s.ClientFor(ctx, authUserID)
	if err != nil {
		return false, err
	}
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return false, err
	}
	return doc.ClientID == client.ID, nil
}
