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
	// ErrBlogPostNotFound is returned when a blog post is not found.
	ErrBlogPostNotFound = errors.New("blog post not found")
	// ErrBlogSlugExists is returned when attempting to create/update a post with a duplicate slug.
	ErrBlogSlugExists = errors.New("blog post slug already exists")
)

const blogColumns = `id, title, slug, excerpt, body, status, author_name, published_at, created_at, updated_at`

// BlogRepo provides database operations for blog posts.
type BlogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBlogRepo creates a new BlogRepo with real time provider.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBlogRepoWithTimeProvider creates a new BlogRepo with a custom time provider (useful for tests).
func NewBlogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: tp}
}

// Create inserts a new blog post. Publishing at creation stamps published_at.
func (r *BlogRepo) Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	if req == nil {
		return nil, errors.New("create blog post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var publishedAt any
	if req.Status == model.BlogPostStatusPublished {
		publishedAt = now
	}

	var out model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO blog_posts (title, slug, excerpt, body, status, author_name, published_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+blogColumns,
			strings.TrimSpace(req.Title),
			req.Slug,
			req.Excerpt,
			req.Body,
			req.Status,
			strings.TrimSpace(req.AuthorName),
			publishedAt,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, nil, ErrBlogSlugExists)
	}
	return &out, nil
}

// GetByID retrieves a post by ID regardless of status.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return r.getByQuery(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id)
}

// GetBySlug retrieves a post by slug regardless of status.
func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.getByQuery(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug)
}

// GetPublishedBySlug retrieves a published post by slug for the public site.
func (r *BlogRepo) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.getByQuery(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1 AND status = 'published'`, slug)
}

func (r *BlogRepo) getByQuery(ctx context.Context, query string, arg any) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &out, nil
}

// List retrieves posts with optional status and title filters, newest first.
func (r *BlogRepo) List(ctx context.Context, opts model.BlogPostListOptions) ([]*model.BlogPost, error) {
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
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	res := make([]*model.BlogPost, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a post. Moving into published stamps published_at
// on first publish only.
func (r *BlogRepo) Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE blog_posts SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + blogColumns

	var out model.BlogPost
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BlogPost])
		return err
	}); err != nil {
		return nil, mapWriteErr(err, ErrBlogPostNotFound, ErrBlogSlugExists)
	}
	return &out, nil
}

func (r *BlogRepo) buildUpdateClause(req model.UpdateBlogPostRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Slug != nil {
		setParts = append(setParts, fmt.Sprintf("slug = $%d", nextIdx()))
		args = append(args, *req.Slug)
	}
	if req.Excerpt != nil {
		setParts = append(setParts, fmt.Sprintf("excerpt = $%d", nextIdx()))
		args = append(args, *req.Excerpt)
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.AuthorName != nil {
		setParts = append(setParts, fmt.Sprintf("author_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.AuthorName))
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
		if *req.Status == model.BlogPostStatusPublished {
			setParts = append(setParts, fmt.Sprintf("published_at = COALESCE(published_at, $%d)", nextIdx()))
			args = append(args, r.timeProvider.Now().UTC())
		}
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes a post by ID. Returns whether a row was removed.
func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", err)
	}
	return rows > 0, nil
}
