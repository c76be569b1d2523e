package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nardonidigital/agency-api/internal/data/pgxutil"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ErrContactNotFound is returned when a contact submission is not found.
var ErrContactNotFound = errors.New("contact submission not found")

const contactColumns = `id, name, email, phone, company, message, handled, created_at`

// ContactRepo provides database operations for contact form submissions.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactRepo creates a new ContactRepo with real time provider.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a new ContactRepo with a custom time provider (useful for tests).
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

// Create inserts a new contact submission.
func (r *ContactRepo) Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactSubmission, error) {
	if req == nil {
		return nil, errors.New("create contact request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.ContactSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contacts (name, email, phone, company, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+contactColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Email),
			req.Phone,
			req.Company,
			strings.TrimSpace(req.Message),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create contact submission: %w", err)
	}
	return &out, nil
}

// List retrieves contact submissions, newest first. Unhandled submissions only when unhandledOnly is set.
func (r *ContactRepo) List(ctx context.Context, limit, offset int, unhandledOnly bool) ([]*model.ContactSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + contactColumns + ` FROM contacts`
	if unhandledOnly {
		query += ` WHERE handled = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.ContactSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}

	res := make([]*model.ContactSubmission, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkHandled flags a submission as handled.
func (r *ContactRepo) MarkHandled(ctx context.Context, id string) (*model.ContactSubmission, error) {
	var out model.ContactSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE contacts SET handled = TRUE WHERE id = $1
			RETURNING `+contactColumns, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactSubmission])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to mark contact submission handled: %w", err)
	}
	return &out, nil
}

// Delete removes a submission by ID. Returns whether a row was removed.
func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete contact submission: %w", err)
	}
	return rows > 0, nil
}
