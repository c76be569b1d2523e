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

var (
	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvoiceNumberExists is returned when an invoice number is already taken.
	ErrInvoiceNumberExists = errors.New("invoice number already exists")
)

const (
	invoiceColumns = `id, client_id, number, status, currency, due_at, paid_at, created_at, updated_at`
	itemColumns    = `id, invoice_id, description, quantity, unit_amount_cents`
)

// InvoiceRepo provides database operations for invoices and their line items.
type InvoiceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewInvoiceRepo creates a new InvoiceRepo with real time provider.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewInvoiceRepoWithTimeProvider creates a new InvoiceRepo with a custom time provider (useful for tests).
func NewInvoiceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *InvoiceRepo {
	return &InvoiceRepo{DB: db, timeProvider: tp}
}

// Create inserts an invoice and its line items in one transaction.
func (r *InvoiceRepo) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	if req == nil {
		return nil, errors.New("create invoice request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Invoice
	if err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO invoices (client_id, number, status, currency, due_at, created_at)
			VALUES ($1, $2, 'draft', $3, $4, $5)
			RETURNING `+invoiceColumns,
			req.ClientID,
			strings.TrimSpace(req.Number),
			req.Currency,
			req.DueAt,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
		rows.Close()
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			itemRows, itemErr := tx.Query(ctx, `
				INSERT INTO invoice_items (invoice_id, description, quantity, unit_amount_cents)
				VALUES ($1, $2, $3, $4)
				RETURNING `+itemColumns,
				out.ID,
				strings.TrimSpace(item.Description),
				item.Quantity,
				item.UnitAmountCents,
			)
			if itemErr != nil {
				return itemErr
			}
			inserted, collectErr := pgx.CollectOneRow(itemRows, pgx.RowToStructByName[model.InvoiceItem])
			itemRows.Close()
			if collectErr != nil {
				return collectErr
			}
			out.Items = append(out.Items, inserted)
		}
		return nil
	}); err != nil {
		return nil, mapWriteErr(err, nil, ErrInvoiceNumberExists)
	}
	return &out, nil
}

// GetByID retrieves an invoice with its items.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var out model.Invoice
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
		rows.Close()
		if err != nil {
			return err
		}

		itemRows, err := conn.Query(ctx, `
			SELECT `+itemColumns+` FROM invoice_items
			WHERE invoice_id = $1 ORDER BY id`, id)
		if err != nil {
			return err
		}
		defer itemRows.Close()
		out.Items, err = pgx.CollectRows(itemRows, pgx.RowToStructByName[model.InvoiceItem])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &out, nil
}

// List retrieves invoices across all clients, newest first, joined with the
// client name for back-office display. Items are not loaded.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*model.InvoiceWithClient, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.InvoiceWithClient
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT i.id, i.client_id, i.number, i.status, i.currency, i.due_at,
			       i.paid_at, i.created_at, i.updated_at, c.name AS client_name
			FROM invoices i
			JOIN clients c ON c.id = i.client_id
			ORDER BY i.created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.InvoiceWithClient])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	res := make([]*model.InvoiceWithClient, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByClient retrieves invoices for a client, newest first, without items.
func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Invoice
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+invoiceColumns+` FROM invoices
			WHERE client_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`, clientID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Invoice])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	res := make([]*model.Invoice, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus moves an invoice through its lifecycle. Marking paid stamps paid_at.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, req model.UpdateInvoiceStatusRequest) (*model.Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var paidAt any
	if req.Status == model.InvoiceStatusPaid {
		paidAt = now
	}

	var out model.Invoice
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE invoices
			SET status = $1, paid_at = COALESCE($2, paid_at), updated_at = $3
			WHERE id = $4
			RETURNING `+invoiceColumns,
			req.Status, paidAt, now, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Invoice])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return &out, nil
}

// Delete deletes an invoice and its items. Returns whether a row was removed.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete invoice: %w", err)
	}
	return rows > 0, nil
}
