package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// PlanHandlerOptions groups dependencies for PlanHandler.
type PlanHandlerOptions struct {
	Plans  *service.PlanService
	Logger *slog.Logger
}

// PlanHandler serves back-office marketing plan management.
type PlanHandler struct {
	plans  *service.PlanService
	logger *slog.Logger
}

// NewPlanHandler constructs a new PlanHandler.
func NewPlanHandler(opts PlanHandlerOptions) *PlanHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanHandler{plans: opts.Plans, logger: logger}
}

// Create handles POST /api/admin/plans.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMarketingPlanRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	plan, err := h.plans.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "plan create failed", "could not create plan")
		return
	}
	WriteJSON(w, http.StatusCreated, plan)
}

// Get handles GET /api/admin/plans/{id}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrPlanNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "plan get failed", "could not get plan")
		return
	}
	WriteJSON(w, http.StatusOK, plan)
}

// List handles GET /api/admin/plans. Rows carry the client name for the
// back-office table.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	plans, err := h.plans.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "plan list failed", "could not list plans")
		return
	}
	WriteJSON(w, http.StatusOK, plans)
}

// ListByClient handles GET /api/admin/clients/{id}/plans.
func (h *PlanHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	plans, err := h.plans.ListByClient(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "plan list failed", "could not list plans")
		return
	}
	WriteJSON(w, http.StatusOK, plans)
}

// Update handles PATCH /api/admin/plans/{id}.
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateMarketingPlanRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	plan, err := h.plans.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		if errors.Is(err, data.ErrPlanNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "plan update failed", "could not update plan")
		return
	}
	WriteJSON(w, http.StatusOK, plan)
}

// Delete handles DELETE /api/admin/plans/{id}.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.plans.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "plan delete failed", "could not delete plan")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("marketing plan not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
