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

const settingsColumns = `company_name, tag_line, contact_email, phone, address, linkedin_url, instagram_url, updated_at`

// SettingsRepo provides database operations for the single company settings row.
type SettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingsRepo creates a new SettingsRepo with real time provider.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSettingsRepoWithTimeProvider creates a new SettingsRepo with a custom time provider (useful for tests).
func NewSettingsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: tp}
}

// Get returns the stored settings, or defaults before the first save.
func (r *SettingsRepo) Get(ctx context.Context) (*model.CompanySettings, error) {
	var out model.CompanySettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+settingsColumns+` FROM company_settings WHERE singleton = TRUE`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CompanySettings])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := model.DefaultCompanySettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}
	return &out, nil
}

// Update upserts the settings row, applying only the provided fields on top
// of whatever is stored (or the defaults).
func (r *SettingsRepo) Update(ctx context.Context, req model.UpdateCompanySettingsRequest) (*model.CompanySettings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.CompanyName != nil {
		merged.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.TagLine != nil {
		merged.TagLine = req.TagLine
	}
	if req.ContactEmail != nil {
		merged.ContactEmail = strings.TrimSpace(*req.ContactEmail)
	}
	if req.Phone != nil {
		merged.Phone = req.Phone
	}
	if req.Address != nil {
		merged.Address = req.Address
	}
	if req.LinkedInURL != nil {
		merged.LinkedInURL = req.LinkedInURL
	}
	if req.InstagramURL != nil {
		merged.InstagramURL = req.InstagramURL
	}
	merged.UpdatedAt = r.timeProvider.Now().UTC()

	var out model.CompanySettings
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args := []any{
			merged.CompanyName, merged.TagLine, merged.ContactEmail, merged.Phone,
			merged.Address, merged.LinkedInURL, merged.InstagramURL, merged.UpdatedAt,
		}
		placeholders := make([]string, len(args))
		for i := range args {
			placeholders[i] = "$" + strconv.Itoa(i+1)
		}
		rows, err := conn.Query(ctx, `
			INSERT INTO company_settings (singleton, `+settingsColumns+`)
			VALUES (TRUE, `+strings.Join(placeholders, ", ")+`)
			ON CONFLICT (singleton) DO UPDATE SET
				company_name = EXCLUDED.company_name,
				tag_line = EXCLUDED.tag_line,
				contact_email = EXCLUDED.contact_email,
				phone = EXCLUDED.phone,
				address = EXCLUDED.address,
				linkedin_url = EXCLUDED.linkedin_url,
				instagram_url = EXCLUDED.instagram_url,
				updated_at = EXCLUDED.updated_at
			RETURNING `+settingsColumns, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CompanySettings])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to update company settings: %w", err)
	}
	return &out, nil
}
