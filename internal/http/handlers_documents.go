package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// Multipart form parsing cap. The per-document size limit is enforced by
// request validation; this only bounds in-memory form buffering.
const maxUploadMemoryBytes = 8 << 20

// DocumentHandlerOptions groups dependencies for DocumentHandler.
type DocumentHandlerOptions struct {
	Documents *service.DocumentService
	Logger    *slog.Logger
}

// DocumentHandler serves back-office document upload and retrieval.
type DocumentHandler struct {
	documents *service.DocumentService
	logger    *slog.Logger
}

// NewDocumentHandler constructs a new DocumentHandler.
func NewDocumentHandler(opts DocumentHandlerOptions) *DocumentHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{documents: opts.Documents, logger: logger}
}

// Upload handles POST /api/admin/documents as a multipart form with a "file"
// part and a "client_id" field.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemoryBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: errors.New("file part is required")})
		return
	}
	defer file.Close()

	uploadedBy := ""
	if sess, ok := SessionFromContext(r.Context()); ok {
		uploadedBy = sess.User.ID
	}

	req := model.CreateDocumentRequest{
		ClientID:    r.FormValue("client_id"),
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		UploadedBy:  uploadedBy,
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	doc, err := h.documents.Upload(r.Context(), &req, file)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "document upload failed", "could not upload document")
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// Get handles GET /api/admin/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrDocumentNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "document get failed", "could not get document")
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// List handles GET /api/admin/documents. Rows carry the client name for the
// back-office table.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	docs, err := h.documents.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "document list failed", "could not list documents")
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// ListByClient handles GET /api/admin/clients/{id}/documents.
func (h *DocumentHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	docs, err := h.documents.ListByClient(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "document list failed", "could not list documents")
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// Download handles GET /api/admin/documents/{id}/download.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveDownload(w, r, r.PathValue("id"))
}

func (h *DocumentHandler) serveDownload(w http.ResponseWriter, r *http.Request, id string) {
	doc, body, err := h.documents.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrDocumentNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "document download failed", "could not download document")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.WarnContext(r.Context(), "document stream interrupted", "error", err, "document_id", doc.ID)
	}
}

// Delete handles DELETE /api/admin/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.documents.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "document delete failed", "could not delete document")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("document not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
