package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nardonidigital/agency-api/internal/data/pgxutil"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ErrDocumentNotFound is returned when a document is not found.
var ErrDocumentNotFound = errors.New("document not found")

const documentColumns = `id, client_id, name, storage_key, content_type, size_bytes, uploaded_by, created_at`

// DocumentRepo provides database operations for document metadata.
type DocumentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDocumentRepo creates a new DocumentRepo with real time provider.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDocumentRepoWithTimeProvider creates a new DocumentRepo with a custom time provider (useful for tests).
func NewDocumentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: tp}
}

// Create registers document metadata after the bytes are stored.
func (r *DocumentRepo) Create(ctx context.Context, req *model.CreateDocumentRequest, storageKey string) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if storageKey == "" {
		return nil, errors.New("storage key is required")
	}

	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO documents (client_id, name, storage_key, content_type, size_bytes, uploaded_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+documentColumns,
			req.ClientID,
			req.Name,
			storageKey,
			req.ContentType,
			req.SizeBytes,
			req.UploadedBy,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, nil, nil)
	}
	return &out, nil
}

// GetByID retrieves document metadata by ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &out, nil
}

// List retrieves document metadata across all clients, newest first, joined
// with the client name for back-office display.
func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*model.DocumentWithClient, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.DocumentWithClient
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT d.id, d.client_id, d.name, d.storage_key, d.content_type,
			       d.size_bytes, d.uploaded_by, d.created_at,
			       c.name AS client_name
			FROM documents d
			JOIN clients c ON c.id = d.client_id
			ORDER BY d.created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.DocumentWithClient])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	res := make([]*model.DocumentWithClient, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByClient retrieves document metadata for a client, newest first.
func (r *DocumentRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+documentColumns+` FROM documents
			WHERE client_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`, clientID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	res := make([]*model.Document, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes document metadata by ID. Returns whether a row was removed.
func (r *DocumentRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return rows > 0, nil
}
