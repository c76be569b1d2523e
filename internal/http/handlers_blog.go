package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// BlogHandlerOptions groups dependencies for BlogHandler.
type BlogHandlerOptions struct {
	Blog   *service.BlogService
	Logger *slog.Logger
}

// BlogHandler serves the public blog and the back-office editor.
type BlogHandler struct {
	blog   *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler constructs a new BlogHandler.
func NewBlogHandler(opts BlogHandlerOptions) *BlogHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogHandler{blog: opts.Blog, logger: logger}
}

// ListPublished handles GET /api/blog. Public, published posts only.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	posts, err := h.blog.ListPublished(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "blog public list failed", "could not list posts")
		return
	}
	WriteJSON(w, http.StatusOK, posts)
}

// GetPublishedBySlug handles GET /api/blog/{slug}. Public; drafts 404.
func (h *BlogHandler) GetPublishedBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.GetPublishedBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, data.ErrBlogPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "blog get by slug failed", "could not get post")
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// Create handles POST /api/admin/blog.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	post, err := h.blog.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, data.ErrBlogSlugExists) {
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "blog create failed", "could not create post")
		return
	}
	WriteJSON(w, http.StatusCreated, post)
}

// Get handles GET /api/admin/blog/{id}. Drafts included.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrBlogPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "blog get failed", "could not get post")
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// List handles GET /api/admin/blog with optional status and q filters.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	opts := model.BlogPostListOptions{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.BlogPostStatus(raw)
		if !status.Valid() {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: errors.New("invalid status filter")})
			return
		}
		opts.Status = &status
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}

	posts, err := h.blog.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "blog list failed", "could not list posts")
		return
	}
	WriteJSON(w, http.StatusOK, posts)
}

// Update handles PATCH /api/admin/blog/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	post, err := h.blog.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrBlogPostNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		case errors.Is(err, data.ErrBlogSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		default:
			writeServiceError(w, r, h.logger, err, "blog update failed", "could not update post")
		}
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/admin/blog/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.blog.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "blog delete failed", "could not delete post")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("blog post not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
