package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/service"
)

// PortalHandlerOptions groups dependencies for PortalHandler.
type PortalHandlerOptions struct {
	Portal    *service.PortalService
	Documents *service.DocumentService
	Logger    *slog.Logger
}

// PortalHandler serves the client portal. Every read is scoped to the client
// linked to the session user; client IDs from the request are never trusted.
type PortalHandler struct {
	portal    *service.PortalService
	documents *service.DocumentService
	logger    *slog.Logger
}

// NewPortalHandler constructs a new PortalHandler.
func NewPortalHandler(opts PortalHandlerOptions) *PortalHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalHandler{portal: opts.Portal, documents: opts.Documents, logger: logger}
}

// authUserID pulls the session user ID. The routes are mounted behind
// RequireRole(client), so a missing session is a wiring bug.
func (h *PortalHandler) authUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthorized", Err: errors.New("authentication required")})
		return "", false
	}
	return sess.User.ID, true
}

// Profile handles GET /api/portal/profile.
func (h *PortalHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authUserID(w, r)
	if !ok {
		return
	}

	client, err := h.portal.ClientFor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoLinkedClient) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "portal profile failed", "could not load profile")
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// Invoices handles GET /api/portal/invoices.
func (h *PortalHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authUserID(w, r)
	if !ok {
		return
	}

	limit, offset := ParseLimitOffset(r)
	invoices, err := h.portal.Invoices(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeListError(w, r, "portal invoices failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, invoices)
}

// Plans handles GET /api/portal/plans.
func (h *PortalHandler) Plans(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authUserID(w, r)
	if !ok {
		return
	}

	limit, offset := ParseLimitOffset(r)
	plans, err := h.portal.Plans(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeListError(w, r, "portal plans failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, plans)
}

// Documents handles GET /api/portal/documents.
func (h *PortalHandler) Documents(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authUserID(w, r)
	if !ok {
		return
	}

	limit, offset := ParseLimitOffset(r)
	docs, err := h.portal.Documents(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeListError(w, r, "portal documents failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// DownloadDocument handles GET /api/portal/documents/{id}/download.
// Documents belonging to other clients are reported as not found.
func (h *PortalHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	owns, err := h.portal.OwnsDocument(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNoLinkedClient) || errors.Is(err, data.ErrDocumentNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("document not found")})
			return
		}
		writeServiceError(w, r, h.logger, err, "portal ownership check failed", "could not download document")
		return
	}
	if !owns {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("document not found")})
		return
	}

	doc, body, err := h.documents.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "portal download failed", "could not download document")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.WarnContext(r.Context(), "portal stream interrupted", "error", err, "document_id", doc.ID)
	}
}

func (h *PortalHandler) writeListError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, service.ErrNoLinkedClient) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		return
	}
	writeServiceError(w, r, h.logger, err, msg, "portal request failed")
}
