package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// InvoiceHandlerOptions groups dependencies for InvoiceHandler.
type InvoiceHandlerOptions struct {
	Invoices *service.InvoiceService
	Logger   *slog.Logger
}

// InvoiceHandler serves back-office invoice management.
type InvoiceHandler struct {
	invoices *service.InvoiceService
	logger   *slog.Logger
}

// NewInvoiceHandler constructs a new InvoiceHandler.
func NewInvoiceHandler(opts InvoiceHandlerOptions) *InvoiceHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceHandler{invoices: opts.Invoices, logger: logger}
}

// Create handles POST /api/admin/invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInvoiceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	invoice, err := h.invoices.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, data.ErrInvoiceNumberExists) {
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "invoice create failed", "could not create invoice")
		return
	}
	WriteJSON(w, http.StatusCreated, invoice)
}

// Get handles GET /api/admin/invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrInvoiceNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "invoice get failed", "could not get invoice")
		return
	}
	WriteJSON(w, http.StatusOK, invoice)
}

// List handles GET /api/admin/invoices. Rows carry the client name for the
// back-office table.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	invoices, err := h.invoices.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "invoice list failed", "could not list invoices")
		return
	}
	WriteJSON(w, http.StatusOK, invoices)
}

// ListByClient handles GET /api/admin/clients/{id}/invoices.
func (h *InvoiceHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	invoices, err := h.invoices.ListByClient(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "invoice list failed", "could not list invoices")
		return
	}
	WriteJSON(w, http.StatusOK, invoices)
}

// UpdateStatus handles POST /api/admin/invoices/{id}/status.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateInvoiceStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	invoice, err := h.invoices.UpdateStatus(r.Context(), r.PathValue("id"), req)
	if err != nil {
		if errors.Is(err, data.ErrInvoiceNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "invoice status update failed", "could not update invoice")
		return
	}
	WriteJSON(w, http.StatusOK, invoice)
}

// Delete handles DELETE /api/admin/invoices/{id}.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.invoices.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "invoice delete failed", "could not delete invoice")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("invoice not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
