package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/ports"
	"github.com/nardonidigital/agency-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Sessions  *service.SessionService
	Clients   *service.ClientService
	Contacts  *service.ContactService
	Blog      *service.BlogService
	Invoices  *service.InvoiceService
	Plans     *service.PlanService
	Documents *service.DocumentService
	Leads     *service.LeadService
	Team      *service.TeamService
	Settings  *service.SettingsService
	Portal    *service.PortalService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	DB            *sql.DB
	Provider      ports.IdentityProvider
	SessionStore  ports.SessionStore
	DocumentStore ports.DocumentStore
	Logger        *slog.Logger
}

// BuildServices wires repositories and services. No business rules here.
func BuildServices(deps ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clientRepo := data.NewClientRepo(deps.DB)
	contactRepo := data.NewContactRepo(deps.DB)
	blogRepo := data.NewBlogRepo(deps.DB)
	invoiceRepo := data.NewInvoiceRepo(deps.DB)
	planRepo := data.NewPlanRepo(deps.DB)
	documentRepo := data.NewDocumentRepo(deps.DB)
	leadRepo := data.NewLeadRepo(deps.DB)
	teamRepo := data.NewTeamRepo(deps.DB)
	settingsRepo := data.NewSettingsRepo(deps.DB)

	documents := service.NewDocumentService(service.DocumentServiceOptions{
		Documents: documentRepo,
		Store:     deps.DocumentStore,
		Logger:    logger,
	})

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider: deps.Provider,
			Logger:   logger,
		}),
		Sessions:  service.NewSessionService(service.SessionServiceOptions{Store: deps.SessionStore}),
		Clients:   service.NewClientService(clientRepo),
		Contacts:  service.NewContactService(contactRepo, logger),
		Blog:      service.NewBlogService(blogRepo),
		Invoices:  service.NewInvoiceService(invoiceRepo),
		Plans:     service.NewPlanService(planRepo),
		Documents: documents,
		Leads:     service.NewLeadService(leadRepo),
		Team:      service.NewTeamService(teamRepo),
		Settings:  service.NewSettingsService(settingsRepo),
		Portal: service.NewPortalService(service.PortalServiceOptions{
			Clients:   clientRepo,
			Invoices:  invoiceRepo,
			Plans:     planRepo,
			Documents: documentRepo,
		}),
	}
}
