package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/config"
	httpx "github.com/nardonidigital/agency-api/internal/http"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Provider ports.IdentityProvider
	DB       *sql.DB
	Logger   *slog.Logger
}

// BuildHTTPHandler builds the full routing table with middleware applied.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	svcs := cfg.Services

	mw := httpx.NewMiddleware(httpx.MiddlewareOptions{
		Sessions: svcs.Sessions,
		Provider: cfg.Provider,
		Logger:   logger,
	})

	return httpx.NewRouter(httpx.RouterOptions{
		Middleware: mw,
		Auth:       httpx.NewAuthHandler(httpx.AuthHandlerOptions{Auth: svcs.Auth, Sessions: svcs.Sessions, Logger: logger}),
		Clients:    httpx.NewClientHandler(httpx.ClientHandlerOptions{Clients: svcs.Clients, Logger: logger}),
		Contacts:   httpx.NewContactHandler(httpx.ContactHandlerOptions{Contacts: svcs.Contacts, Logger: logger}),
		Blog:       httpx.NewBlogHandler(httpx.BlogHandlerOptions{Blog: svcs.Blog, Logger: logger}),
		Invoices:   httpx.NewInvoiceHandler(httpx.InvoiceHandlerOptions{Invoices: svcs.Invoices, Logger: logger}),
		Plans:      httpx.NewPlanHandler(httpx.PlanHandlerOptions{Plans: svcs.Plans, Logger: logger}),
		Documents:  httpx.NewDocumentHandler(httpx.DocumentHandlerOptions{Documents: svcs.Documents, Logger: logger}),
		Leads:      httpx.NewLeadHandler(httpx.LeadHandlerOptions{Leads: svcs.Leads, Logger: logger}),
		Team:       httpx.NewTeamHandler(httpx.TeamHandlerOptions{Team: svcs.Team, Logger: logger}),
		Settings:   httpx.NewSettingsHandler(httpx.SettingsHandlerOptions{Settings: svcs.Settings, Logger: logger}),
		Portal:     httpx.NewPortalHandler(httpx.PortalHandlerOptions{Portal: svcs.Portal, Documents: svcs.Documents, Logger: logger}),
		Health:     httpx.NewHealthHandler(cfg.DB),
	})
}

// NewHTTPServer creates the HTTP server with the full routing table.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	httpCfg := config.HTTPConfig{}
	if cfg.Config != nil {
		httpCfg = cfg.Config.HTTP
	}
	addr := httpCfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(cfg),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, cfg config.HTTPConfig, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
