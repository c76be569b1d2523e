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

var (
	// ErrClientNotFound is returned when a client is not found.
	ErrClientNotFound = errors.New("client not found")
	// ErrClientEmailExists is returned when a client with the same contact email already exists.
	ErrClientEmailExists = errors.New("client contact email already exists")
)

const clientColumns = `id, name, contact_email, phone, website, auth_user_id, status, notes, created_at, updated_at`

// ClientRepo provides database operations for clients.
type ClientRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClientRepo creates a new ClientRepo with real time provider.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewClientRepoWithTimeProvider creates a new ClientRepo with a custom time provider (useful for tests).
func NewClientRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: tp}
}

// Create inserts a new client.
func (r *ClientRepo) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if req == nil {
		return nil, errors.New("create client request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO clients (name, contact_email, phone, website, auth_user_id, status, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+clientColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.ContactEmail),
			req.Phone,
			req.Website,
			req.AuthUserID,
			req.Status,
			req.Notes,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, nil, ErrClientEmailExists)
	}
	return &out, nil
}

// GetByID retrieves a client by ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return &out, nil
}

// GetByAuthUserID retrieves the client linked to a portal login identity.
func (r *ClientRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*model.Client, error) {
	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE auth_user_id = $1`, authUserID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by auth user ID: %w", err)
	}
	return &out, nil
}

// List retrieves clients with pagination, newest first.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*model.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+clientColumns+` FROM clients
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	res := make([]*model.Client, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a client.
func (r *ClientRepo) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE clients SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + clientColumns

	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, ErrClientNotFound, ErrClientEmailExists)
	}
	return &out, nil
}

func (r *ClientRepo) buildUpdateClause(req model.UpdateClientRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.ContactEmail != nil {
		setParts = append(setParts, fmt.Sprintf("contact_email = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.ContactEmail))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, *req.Phone)
	}
	if req.Website != nil {
		setParts = append(setParts, fmt.Sprintf("website = $%d", nextIdx()))
		args = append(args, *req.Website)
	}
	if req.AuthUserID != nil {
		if strings.TrimSpace(*req.AuthUserID) == "" {
			setParts = append(setParts, "auth_user_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("auth_user_id = $%d", nextIdx()))
			args = append(args, *req.AuthUserID)
		}
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

	return strings.Join(setParts, ", "), args
}

// Delete deletes a client by ID. Returns whether a row was removed.
func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete client: %w", err)
	}
	return rows > 0, nil
}
