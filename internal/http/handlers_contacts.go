package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// ContactHandlerOptions groups dependencies for ContactHandler.
type ContactHandlerOptions struct {
	Contacts *service.ContactService
	Logger   *slog.Logger
}

// ContactHandler serves the public contact form and back-office triage.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *slog.Logger
}

// NewContactHandler constructs a new ContactHandler.
func NewContactHandler(opts ContactHandlerOptions) *ContactHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{contacts: opts.Contacts, logger: logger}
}

// Submit handles POST /api/contacts. Public endpoint.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	submission, err := h.contacts.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "contact submit failed", "could not submit message")
		return
	}
	WriteJSON(w, http.StatusCreated, submission)
}

// List handles GET /api/admin/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	unhandledOnly := r.URL.Query().Get("unhandled") == "true"

	submissions, err := h.contacts.List(r.Context(), limit, offset, unhandledOnly)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "contact list failed", "could not list submissions")
		return
	}
	WriteJSON(w, http.StatusOK, submissions)
}

// MarkHandled handles POST /api/admin/contacts/{id}/handled.
func (h *ContactHandler) MarkHandled(w http.ResponseWriter, r *http.Request) {
	submission, err := h.contacts.MarkHandled(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrContactNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "contact mark handled failed", "could not update submission")
		return
	}
	WriteJSON(w, http.StatusOK, submission)
}

// Delete handles DELETE /api/admin/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.contacts.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "contact delete failed", "could not delete submission")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("contact submission not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
