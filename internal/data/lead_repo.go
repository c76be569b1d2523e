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

// ErrLeadNotFound is returned when a lead is not found.
var ErrLeadNotFound = errors.New("lead not found")

const leadColumns = `id, name, email, company, source, status, notes, created_at, updated_at`

// LeadRepo provides database operations for outreach leads.
type LeadRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewLeadRepo creates a new LeadRepo with real time provider.
func NewLeadRepo(db *sql.DB) *LeadRepo {
	return &LeadRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewLeadRepoWithTimeProvider creates a new LeadRepo with a custom time provider (useful for tests).
func NewLeadRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *LeadRepo {
	return &LeadRepo{DB: db, timeProvider: tp}
}

// Create inserts a new lead.
func (r *LeadRepo) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	if req == nil {
		return nil, errors.New("create lead request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO leads (name, email, company, source, status, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+leadColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Email),
			req.Company,
			req.Source,
			req.Status,
			req.Notes,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a lead by ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	var out model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &out, nil
}

// List retrieves leads with optional status and name/company filters, newest first.
func (r *LeadRepo) List(ctx context.Context, opts model.LeadListOptions) ([]*model.Lead, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var where []string
	args := []any{limit, offset}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	res := make([]*model.Lead, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a lead.
func (r *LeadRepo) Update(ctx context.Context, id string, req model.UpdateLeadRequest) (*model.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 7)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Email))
	}
	if req.Company != nil {
		setParts = append(setParts, fmt.Sprintf("company = $%d", nextIdx()))
		args = append(args, *req.Company)
	}
	if req.Source != nil {
		setParts = append(setParts, fmt.Sprintf("source = $%d", nextIdx()))
		args = append(args, *req.Source)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.Notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", nextIdx()))
		args = append(args, *req.Notes)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE leads SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + leadColumns

	var out model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return &out, nil
}

// Delete deletes a lead by ID. Returns whether a row was removed.
func (r *LeadRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete lead: %w", err)
	}
	return rows > 0, nil
}
