package devseed

// Package devseed populates a development database with sample agency data:
// clients, a published blog post, team members, an invoice, and a marketing
// plan. Seeding is idempotent; records that already exist are skipped.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// Services bundles the repositories needed for development seeding.
type Services struct {
	DB       *sql.DB
	clients  *data.ClientRepo
	blog     *data.BlogRepo
	invoices *data.InvoiceRepo
	plans    *data.PlanRepo
	team     *data.TeamRepo
	leads    *data.LeadRepo
	settings *data.SettingsRepo
}

// NewServices constructs all required repositories for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:       db,
		clients:  data.NewClientRepo(db),
		blog:     data.NewBlogRepo(db),
		invoices: data.NewInvoiceRepo(db),
		plans:    data.NewPlanRepo(db),
		team:     data.NewTeamRepo(db),
		leads:    data.NewLeadRepo(db),
		settings: data.NewSettingsRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := seedClient(ctx, svcs, logger)
	if err != nil {
		return err
	}
	if client != nil {
		seedInvoice(ctx, svcs, client.ID, logger)
		seedPlan(ctx, svcs, client.ID, logger)
	}

	seedBlogPost(ctx, svcs, logger)
	seedTeam(ctx, svcs, logger)
	seedLead(ctx, svcs, logger)
	seedSettings(ctx, svcs, logger)

	logger.InfoContext(ctx, "development seed complete")
	return nil
}

func seedClient(ctx context.Context, svcs Services, logger *slog.Logger) (*model.Client, error) {
	authUserID := "dev-client-user"
	req := &model.CreateClientRequest{
		Name:         "Acme Outdoor Co",
		ContactEmail: "ops@acme-outdoor.example",
		AuthUserID:   &authUserID,
		Status:       model.ClientStatusActive,
	}
	client, err := svcs.clients.Create(ctx, req)
	if err != nil {
		if errors.Is(err, data.ErrClientEmailExists) {
			logger.InfoContext(ctx, "seed client already exists", "email", req.ContactEmail)
			return svcs.clients.GetByAuthUserID(ctx, authUserID)
		}
		return nil, err
	}
	logger.InfoContext(ctx, "seeded client", "client_id", client.ID)
	return client, nil
}

func seedInvoice(ctx context.Context, svcs Services, clientID string, logger *slog.Logger) {
	due := time.Now().AddDate(0, 1, 0)
	_, err := svcs.invoices.Create(ctx, &model.CreateInvoiceRequest{
		ClientID: clientID,
		Number:   "INV-0001",
		DueAt:    &due,
		Items: []model.CreateInvoiceItemRequest{
			{Description: "Brand strategy workshop", Quantity: 1, UnitAmountCents: 250_000},
			{Description: "Social campaign management", Quantity: 3, UnitAmountCents: 90_000},
		},
	})
	if err != nil {
		if errors.Is(err, data.ErrInvoiceNumberExists) {
			logger.InfoContext(ctx, "seed invoice already exists", "number", "INV-0001")
			return
		}
		logger.WarnContext(ctx, "seed invoice failed", "error", err)
	}
}

func seedPlan(ctx context.Context, svcs Services, clientID string, logger *slog.Logger) {
	milestones, _ := json.Marshal([]map[string]string{
		{"title": "Audience research", "due": "week 2"},
		{"title": "Creative production", "due": "week 5"},
		{"title": "Launch", "due": "week 8"},
	})
	_, err := svcs.plans.Create(ctx, &model.CreateMarketingPlanRequest{
		ClientID:   clientID,
		Title:      "Q4 Awareness Campaign",
		Status:     model.MarketingPlanStatusActive,
		Milestones: milestones,
	})
	if err != nil {
		logger.WarnContext(ctx, "seed plan failed", "error", err)
	}
}

func seedBlogPost(ctx context.Context, svcs Services, logger *slog.Logger) {
	_, err := svcs.blog.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "Five Signals Your Brand Needs a Refresh",
		Body:       "Most brands outgrow their identity before they notice...",
		Status:     model.BlogPostStatusPublished,
		AuthorName: "Studio Team",
	})
	if err != nil {
		if errors.Is(err, data.ErrBlogSlugExists) {
			logger.InfoContext(ctx, "seed blog post already exists")
			return
		}
		logger.WarnContext(ctx, "seed blog post failed", "error", err)
	}
}

func seedTeam(ctx context.Context, svcs Services, logger *slog.Logger) {
	existing, err := svcs.team.List(ctx, true)
	if err != nil {
		logger.WarnContext(ctx, "seed team lookup failed", "error", err)
		return
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "seed team already exists", "count", len(existing))
		return
	}

	members := []*model.CreateTeamMemberRequest{
		{Name: "Marta Nardoni", Title: "Founder & Creative Director", SortOrder: 1},
		{Name: "Leo Park", Title: "Head of Strategy", SortOrder: 2},
		{Name: "Ivy Chen", Title: "Design Lead", SortOrder: 3},
	}
	for _, req := range members {
		if _, err := svcs.team.Create(ctx, req); err != nil {
			logger.WarnContext(ctx, "seed team member failed", "name", req.Name, "error", err)
		}
	}
}

func seedLead(ctx context.Context, svcs Services, logger *slog.Logger) {
	existing, err := svcs.leads.List(ctx, model.LeadListOptions{Limit: 1})
	if err != nil {
		logger.WarnContext(ctx, "seed lead lookup failed", "error", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	source := "referral"
	_, err = svcs.leads.Create(ctx, &model.CreateLeadRequest{
		Name:   "Harbor Coffee Roasters",
		Email:  "hello@harborcoffee.example",
		Source: &source,
	})
	if err != nil {
		logger.WarnContext(ctx, "seed lead failed", "error", err)
	}
}

func seedSettings(ctx context.Context, svcs Services, logger *slog.Logger) {
	tagLine := "Marketing that earns attention"
	_, err := svcs.settings.Update(ctx, model.UpdateCompanySettingsRequest{
		TagLine: &tagLine,
	})
	if err != nil {
		logger.WarnContext(ctx, "seed settings failed", "error", err)
	}
}
