package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nardonidigital/agency-api/internal/data/pgxutil"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ErrPlanNotFound is returned when a marketing plan is not found.
var ErrPlanNotFound = errors.New("marketing plan not found")

const planColumns = `id, client_id, title, summary, status, milestones, starts_at, ends_at, created_at, updated_at`

// PlanRepo provides database operations for marketing plans.
type PlanRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPlanRepo creates a new PlanRepo with real time provider.
func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPlanRepoWithTimeProvider creates a new PlanRepo with a custom time provider (useful for tests).
func NewPlanRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PlanRepo {
	return &PlanRepo{DB: db, timeProvider: tp}
}

// Create inserts a new marketing plan.
func (r *PlanRepo) Create(ctx context.Context, req *model.CreateMarketingPlanRequest) (*model.MarketingPlan, error) {
	if req == nil {
		return nil, errors.New("create marketing plan request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.MarketingPlan
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO marketing_plans (client_id, title, summary, status, milestones, starts_at, ends_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+planColumns,
			req.ClientID,
			strings.TrimSpace(req.Title),
			req.Summary,
			req.Status,
			req.Milestones,
			req.StartsAt,
			req.EndsAt,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MarketingPlan])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, nil, nil)
	}
	return &out, nil
}

// GetByID retrieves a plan by ID.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*model.MarketingPlan, error) {
	var out model.MarketingPlan
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+planColumns+` FROM marketing_plans WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MarketingPlan])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get marketing plan: %w", err)
	}
	return &out, nil
}

// List retrieves plans across all clients, newest first, joined with the
// client name for back-office display.
func (r *PlanRepo) List(ctx context.Context, limit, offset int) ([]*model.PlanWithClient, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.PlanWithClient
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT p.id, p.client_id, p.title, p.summary, p.status, p.milestones,
			       p.starts_at, p.ends_at, p.created_at, p.updated_at,
			       c.name AS client_name
			FROM marketing_plans p
			JOIN clients c ON c.id = p.client_id
			ORDER BY p.created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PlanWithClient])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list marketing plans: %w", err)
	}

	res := make([]*model.PlanWithClient, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByClient retrieves plans for a client, newest first.
func (r *PlanRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.MarketingPlan, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.MarketingPlan
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+planColumns+` FROM marketing_plans
			WHERE client_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`, clientID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.MarketingPlan])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list marketing plans: %w", err)
	}

	res := make([]*model.MarketingPlan, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a plan.
func (r *PlanRepo) Update(ctx context.Context, id string, req model.UpdateMarketingPlanRequest) (*model.MarketingPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Summary != nil {
		setParts = append(setParts, fmt.Sprintf("summary = $%d", nextIdx()))
		args = append(args, *req.Summary)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if len(req.Milestones) > 0 {
		setParts = append(setParts, fmt.Sprintf("milestones = $%d", nextIdx()))
		args = append(args, req.Milestones)
	}
	if req.StartsAt != nil {
		setParts = append(setParts, fmt.Sprintf("starts_at = $%d", nextIdx()))
		args = append(args, *req.StartsAt)
	}
	if req.EndsAt != nil {
		setParts = append(setParts, fmt.Sprintf("ends_at = $%d", nextIdx()))
		args = append(args, *req.EndsAt)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE marketing_plans SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + planColumns

	var out model.MarketingPlan
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MarketingPlan])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to update marketing plan: %w", err)
	}
	return &out, nil
}

// Delete deletes a plan by ID. Returns whether a row was removed.
func (r *PlanRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM marketing_plans WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete marketing plan: %w", err)
	}
	return rows > 0, nil
}
