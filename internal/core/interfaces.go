// Package core defines the repository interfaces consumed by the service
// layer. The data package provides the Postgres implementations.
package core

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ClientRepository defines data operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*model.Client, error)
	List(ctx context.Context, limit, offset int) ([]*model.Client, error)
	Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ContactRepository defines data operations for contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactSubmission, error)
	List(ctx context.Context, limit, offset int, unhandledOnly bool) ([]*model.ContactSubmission, error)
	MarkHandled(ctx context.Context, id string) (*model.ContactSubmission, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BlogRepository defines data operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, opts model.BlogPostListOptions) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InvoiceRepository defines data operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error)
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*model.InvoiceWithClient, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Invoice, error)
	UpdateStatus(ctx context.Context, id string, req model.UpdateInvoiceStatusRequest) (*model.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PlanRepository defines data operations for marketing plans.
type PlanRepository interface {
	Create(ctx context.Context, req *model.CreateMarketingPlanRequest) (*model.MarketingPlan, error)
	GetByID(ctx context.Context, id string) (*model.MarketingPlan, error)
	List(ctx context.Context, limit, offset int) ([]*model.PlanWithClient, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.MarketingPlan, error)
	Update(ctx context.Context, id string, req model.UpdateMarketingPlanRequest) (*model.MarketingPlan, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// DocumentRepository defines data operations for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, req *model.CreateDocumentRequest, storageKey string) (*model.Document, error)
	GetByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, limit, offset int) ([]*model.DocumentWithClient, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Document, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// LeadRepository defines data operations for outreach leads.
type LeadRepository interface {
	Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error)
	GetByID(ctx context.Context, id string) (*model.Lead, error)
	List(ctx context.Context, opts model.LeadListOptions) ([]*model.Lead, error)
	Update(ctx context.Context, id string, req model.UpdateLeadRequest) (*model.Lead, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TeamRepository defines data operations for team member profiles.
type TeamRepository interface {
	Create(ctx context.Context, req *model.CreateTeamMemberRequest) (*model.TeamMember, error)
	GetByID(ctx context.Context, id string) (*model.TeamMember, error)
	List(ctx context.Context, includeHidden bool) ([]*model.TeamMember, error)
	Update(ctx context.Context, id string, req model.UpdateTeamMemberRequest) (*model.TeamMember, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SettingsRepository defines data operations for company settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.CompanySettings, error)
	Update(ctx context.Context, req model.UpdateCompanySettingsRequest) (*model.CompanySettings, error)
}
