package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// LeadHandlerOptions groups dependencies for LeadHandler.
type LeadHandlerOptions struct {
	Leads  *service.LeadService
	Logger *slog.Logger
}

// LeadHandler serves the back-office outreach pipeline.
type LeadHandler struct {
	leads  *service.LeadService
	logger *slog.Logger
}

// NewLeadHandler constructs a new LeadHandler.
func NewLeadHandler(opts LeadHandlerOptions) *LeadHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadHandler{leads: opts.Leads, logger: logger}
}

// Create handles POST /api/admin/leads.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLeadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	lead, err := h.leads.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "lead create failed", "could not create lead")
		return
	}
	WriteJSON(w, http.StatusCreated, lead)
}

// Get handles GET /api/admin/leads/{id}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrLeadNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "lead get failed", "could not get lead")
		return
	}
	WriteJSON(w, http.StatusOK, lead)
}

// List handles GET /api/admin/leads with optional status and q filters.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	opts := model.LeadListOptions{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.LeadStatus(raw)
		if !status.Valid() {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: errors.New("invalid status filter")})
			return
		}
		opts.Status = &status
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}

	leads, err := h.leads.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "lead list failed", "could not list leads")
		return
	}
	WriteJSON(w, http.StatusOK, leads)
}

// Update handles PATCH /api/admin/leads/{id}.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateLeadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	lead, err := h.leads.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		if errors.Is(err, data.ErrLeadNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "lead update failed", "could not update lead")
		return
	}
	WriteJSON(w, http.StatusOK, lead)
}

// Delete handles DELETE /api/admin/leads/{id}.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.leads.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "lead delete failed", "could not delete lead")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("lead not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
