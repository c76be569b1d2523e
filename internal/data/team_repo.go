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

// ErrTeamMemberNotFound is returned when a team member is not found.
var ErrTeamMemberNotFound = errors.New("team member not found")

const teamColumns = `id, name, title, email, bio, photo_url, visible, sort_order, created_at, updated_at`

// TeamRepo provides database operations for team member profiles.
type TeamRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTeamRepo creates a new TeamRepo with real time provider.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTeamRepoWithTimeProvider creates a new TeamRepo with a custom time provider (useful for tests).
func NewTeamRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TeamRepo {
	return &TeamRepo{DB: db, timeProvider: tp}
}

// Create inserts a new team member.
func (r *TeamRepo) Create(ctx context.Context, req *model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	if req == nil {
		return nil, errors.New("create team member request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Default visible to true (matches DB default)
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	var out model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO team_members (name, title, email, bio, photo_url, visible, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+teamColumns,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Title),
			req.Email,
			req.Bio,
			req.PhotoURL,
			visible,
			req.SortOrder,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a team member by ID.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*model.TeamMember, error) {
	var out model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &out, nil
}

// List retrieves team members ordered for display. Hidden members are
// included only when includeHidden is set.
func (r *TeamRepo) List(ctx context.Context, includeHidden bool) ([]*model.TeamMember, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members`
	if !includeHidden {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	var rowsOut []model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	res := make([]*model.TeamMember, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a team member.
func (r *TeamRepo) Update(ctx context.Context, id string, req model.UpdateTeamMemberRequest) (*model.TeamMember, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, *req.Email)
	}
	if req.Bio != nil {
		setParts = append(setParts, fmt.Sprintf("bio = $%d", nextIdx()))
		args = append(args, *req.Bio)
	}
	if req.PhotoURL != nil {
		setParts = append(setParts, fmt.Sprintf("photo_url = $%d", nextIdx()))
		args = append(args, *req.PhotoURL)
	}
	if req.Visible != nil {
		setParts = append(setParts, fmt.Sprintf("visible = $%d", nextIdx()))
		args = append(args, *req.Visible)
	}
	if req.SortOrder != nil {
		setParts = append(setParts, fmt.Sprintf("sort_order = $%d", nextIdx()))
		args = append(args, *req.SortOrder)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE team_members SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + teamColumns

	var out model.TeamMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TeamMember])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}
	return &out, nil
}

// Delete deletes a team member by ID. Returns whether a row was removed.
func (r *TeamRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete team member: %w", err)
	}
	return rows > 0, nil
}
