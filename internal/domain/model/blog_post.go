package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxSlugLen = 200

// BlogPostStatus controls whether a post is publicly visible.
type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusPublished BlogPostStatus = "published"
)

// Valid reports whether the blog post status is supported.
func (s BlogPostStatus) Valid() bool {
	switch s {
	case BlogPostStatusDraft, BlogPostStatusPublished:
		return true
	default:
		return false
	}
}

func normalizeBlogPostStatus(v BlogPostStatus) BlogPostStatus {
	normalized := BlogPostStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return BlogPostStatusDraft
	}
	return normalized
}

// BlogPost is a marketing blog entry. Only published posts are served to the
// public site; drafts are visible in the back office.
type BlogPost struct {
	ID          string         `json:"id"                     db:"id"`
	Title       string         `json:"title"                  db:"title"`
	Slug        string         `json:"slug"                   db:"slug"`
	Excerpt     *string        `json:"excerpt,omitempty"      db:"excerpt"`
	Body        string         `json:"body"                   db:"body"`
	Status      BlogPostStatus `json:"status"                 db:"status"`
	AuthorName  string         `json:"author_name"            db:"author_name"`
	PublishedAt *time.Time     `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time      `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"             db:"updated_at"`
}

// BlogPostListOptions controls paging and filtering for listing posts.
type BlogPostListOptions struct {
	Limit  int
	Offset int
	Status *BlogPostStatus // exact match
	Q      *string         // substring match on title (ILIKE)
}

// CreateBlogPostRequest represents parameters to create a BlogPost.
type CreateBlogPostRequest struct {
	Title      string         `json:"title"`
	Slug       string         `json:"slug,omitempty"`
	Excerpt    *string        `json:"excerpt,omitempty"`
	Body       string         `json:"body"`
	Status     BlogPostStatus `json:"status,omitempty"`
	AuthorName string         `json:"author_name"`
}

// UpdateBlogPostRequest represents parameters to update a BlogPost.
type UpdateBlogPostRequest struct {
	Title      *string         `json:"title,omitempty"`
	Slug       *string         `json:"slug,omitempty"`
	Excerpt    *string         `json:"excerpt,omitempty"`
	Body       *string         `json:"body,omitempty"`
	Status     *BlogPostStatus `json:"status,omitempty"`
	AuthorName *string         `json:"author_name,omitempty"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL-safe slug.
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if utf8.RuneCountInString(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		slug = strings.Trim(slug, "-")
	}
	return slug
}

// Validate validates CreateBlogPostRequest. An empty slug is derived from the title.
func (r *CreateBlogPostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required and cannot be empty")
	}
	if strings.TrimSpace(r.AuthorName) == "" {
		return errors.New("author_name is required and cannot be empty")
	}
	if r.Slug == "" {
		r.Slug = Slugify(r.Title)
	} else {
		r.Slug = Slugify(r.Slug)
	}
	if r.Slug == "" {
		return errors.New("slug cannot be derived from title")
	}
	r.Status = normalizeBlogPostStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBlogPostRequest.
func (r *UpdateBlogPostRequest) HasUpdates() bool {
	return r.Title != nil || r.Slug != nil || r.Excerpt != nil || r.Body != nil ||
		r.Status != nil || r.AuthorName != nil
}

// Validate validates UpdateBlogPostRequest.
func (r *UpdateBlogPostRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Body != nil && strings.TrimSpace(*r.Body) == "" {
		return errors.New("body cannot be empty")
	}
	if r.Slug != nil {
		slug := Slugify(*r.Slug)
		if slug == "" {
			return errors.New("slug cannot be empty")
		}
		*r.Slug = slug
	}
	if r.Status != nil {
		status := normalizeBlogPostStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
