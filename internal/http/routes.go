package httpx

import (
	"net/http"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
)

// RouterOptions groups everything NewRouter mounts.
type RouterOptions struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Clients    *ClientHandler
	Contacts   *ContactHandler
	Blog       *BlogHandler
	Invoices   *InvoiceHandler
	Plans      *PlanHandler
	Documents  *DocumentHandler
	Leads      *LeadHandler
	Team       *TeamHandler
	Settings   *SettingsHandler
	Portal     *PortalHandler
	Health     *HealthHandler
}

// NewRouter builds the HTTP routing table. Three tiers: public endpoints,
// the admin back office gated on the admin role, and the client portal gated
// on the client role. Role gating is exact; neither role implies the other.
func NewRouter(opts RouterOptions) http.Handler {
	mw := opts.Middleware
	mux := http.NewServeMux()

	admin := mw.RequireRole(domainauth.RoleAdmin)
	portal := mw.RequireRole(domainauth.RoleClient)
	superAdmin := func(h http.HandlerFunc) http.Handler {
		return admin(mw.RequireSuperAdmin(h))
	}

	// Public surface.
	mux.HandleFunc("GET /healthz", opts.Health.Check)
	mux.HandleFunc("POST /api/auth/login", opts.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", opts.Auth.Logout)
	mux.HandleFunc("GET /api/auth/status", opts.Auth.Status)
	mux.HandleFunc("POST /api/contacts", opts.Contacts.Submit)
	mux.HandleFunc("GET /api/blog", opts.Blog.ListPublished)
	mux.HandleFunc("GET /api/blog/{slug}", opts.Blog.GetPublishedBySlug)
	mux.HandleFunc("GET /api/team", opts.Team.ListVisible)
	mux.HandleFunc("GET /api/settings", opts.Settings.Get)

	// Back office.
	mux.Handle("POST /api/admin/clients", admin(http.HandlerFunc(opts.Clients.Create)))
	mux.Handle("GET /api/admin/clients", admin(http.HandlerFunc(opts.Clients.List)))
	mux.Handle("GET /api/admin/clients/{id}", admin(http.HandlerFunc(opts.Clients.Get)))
	mux.Handle("PATCH /api/admin/clients/{id}", admin(http.HandlerFunc(opts.Clients.Update)))
	mux.Handle("DELETE /api/admin/clients/{id}", admin(http.HandlerFunc(opts.Clients.Delete)))
	mux.Handle("GET /api/admin/clients/{id}/invoices", admin(http.HandlerFunc(opts.Invoices.ListByClient)))
	mux.Handle("GET /api/admin/clients/{id}/plans", admin(http.HandlerFunc(opts.Plans.ListByClient)))
	mux.Handle("GET /api/admin/clients/{id}/documents", admin(http.HandlerFunc(opts.Documents.ListByClient)))

	mux.Handle("GET /api/admin/contacts", admin(http.HandlerFunc(opts.Contacts.List)))
	mux.Handle("POST /api/admin/contacts/{id}/handled", admin(http.HandlerFunc(opts.Contacts.MarkHandled)))
	mux.Handle("DELETE /api/admin/contacts/{id}", admin(http.HandlerFunc(opts.Contacts.Delete)))

	mux.Handle("POST /api/admin/blog", admin(http.HandlerFunc(opts.Blog.Create)))
	mux.Handle("GET /api/admin/blog", admin(http.HandlerFunc(opts.Blog.List)))
	mux.Handle("GET /api/admin/blog/{id}", admin(http.HandlerFunc(opts.Blog.Get)))
	mux.Handle("PATCH /api/admin/blog/{id}", admin(http.HandlerFunc(opts.Blog.Update)))
	mux.Handle("DELETE /api/admin/blog/{id}", admin(http.HandlerFunc(opts.Blog.Delete)))

	mux.Handle("POST /api/admin/invoices", admin(http.HandlerFunc(opts.Invoices.Create)))
	mux.Handle("GET /api/admin/invoices", admin(http.HandlerFunc(opts.Invoices.List)))
	mux.Handle("GET /api/admin/invoices/{id}", admin(http.HandlerFunc(opts.Invoices.Get)))
	mux.Handle("POST /api/admin/invoices/{id}/status", admin(http.HandlerFunc(opts.Invoices.UpdateStatus)))
	mux.Handle("DELETE /api/admin/invoices/{id}", admin(http.HandlerFunc(opts.Invoices.Delete)))

	mux.Handle("POST /api/admin/plans", admin(http.HandlerFunc(opts.Plans.Create)))
	mux.Handle("GET /api/admin/plans", admin(http.HandlerFunc(opts.Plans.List)))
	mux.Handle("GET /api/admin/plans/{id}", admin(http.HandlerFunc(opts.Plans.Get)))
	mux.Handle("PATCH /api/admin/plans/{id}", admin(http.HandlerFunc(opts.Plans.Update)))
	mux.Handle("DELETE /api/admin/plans/{id}", admin(http.HandlerFunc(opts.Plans.Delete)))

	mux.Handle("POST /api/admin/documents", admin(http.HandlerFunc(opts.Documents.Upload)))
	mux.Handle("GET /api/admin/documents", admin(http.HandlerFunc(opts.Documents.List)))
	mux.Handle("GET /api/admin/documents/{id}", admin(http.HandlerFunc(opts.Documents.Get)))
	mux.Handle("GET /api/admin/documents/{id}/download", admin(http.HandlerFunc(opts.Documents.Download)))
	mux.Handle("DELETE /api/admin/documents/{id}", admin(http.HandlerFunc(opts.Documents.Delete)))

	mux.Handle("POST /api/admin/leads", admin(http.HandlerFunc(opts.Leads.Create)))
	mux.Handle("GET /api/admin/leads", admin(http.HandlerFunc(opts.Leads.List)))
	mux.Handle("GET /api/admin/leads/{id}", admin(http.HandlerFunc(opts.Leads.Get)))
	mux.Handle("PATCH /api/admin/leads/{id}", admin(http.HandlerFunc(opts.Leads.Update)))
	mux.Handle("DELETE /api/admin/leads/{id}", admin(http.HandlerFunc(opts.Leads.Delete)))

	// Team writes additionally require the super-admin privilege, checked
	// fresh against the identity provider on every request.
	mux.Handle("GET /api/admin/team", admin(http.HandlerFunc(opts.Team.ListAll)))
	mux.Handle("GET /api/admin/team/{id}", admin(http.HandlerFunc(opts.Team.Get)))
	mux.Handle("POST /api/admin/team", superAdmin(opts.Team.Create))
	mux.Handle("PATCH /api/admin/team/{id}", superAdmin(opts.Team.Update))
	mux.Handle("DELETE /api/admin/team/{id}", superAdmin(opts.Team.Delete))

	mux.Handle("PATCH /api/admin/settings", admin(http.HandlerFunc(opts.Settings.Update)))

	// Client portal.
	mux.Handle("GET /api/portal/profile", portal(http.HandlerFunc(opts.Portal.Profile)))
	mux.Handle("GET /api/portal/invoices", portal(http.HandlerFunc(opts.Portal.Invoices)))
	mux.Handle("GET /api/portal/plans", portal(http.HandlerFunc(opts.Portal.Plans)))
	mux.Handle("GET /api/portal/documents", portal(http.HandlerFunc(opts.Portal.Documents)))
	mux.Handle("GET /api/portal/documents/{id}/download", portal(http.HandlerFunc(opts.Portal.DownloadDocument)))

	return mw.Logging(mw.Recover(mw.WithSession(mux)))
}
