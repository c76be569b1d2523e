package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// TeamHandlerOptions groups dependencies for TeamHandler.
type TeamHandlerOptions struct {
	Team   *service.TeamService
	Logger *slog.Logger
}

// TeamHandler serves team member profiles. The public list shows visible
// members only; writes are mounted behind the super-admin guard.
type TeamHandler struct {
	team   *service.TeamService
	logger *slog.Logger
}

// NewTeamHandler constructs a new TeamHandler.
func NewTeamHandler(opts TeamHandlerOptions) *TeamHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamHandler{team: opts.Team, logger: logger}
}

// ListVisible handles GET /api/team. Public endpoint.
func (h *TeamHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.ListVisible(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "team public list failed", "could not list team")
		return
	}
	WriteJSON(w, http.StatusOK, members)
}

// ListAll handles GET /api/admin/team.
func (h *TeamHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "team list failed", "could not list team")
		return
	}
	WriteJSON(w, http.StatusOK, members)
}

// Get handles GET /api/admin/team/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.team.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrTeamMemberNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "team get failed", "could not get team member")
		return
	}
	WriteJSON(w, http.StatusOK, member)
}

// Create handles POST /api/admin/team. Super admin only.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTeamMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	member, err := h.team.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "team create failed", "could not create team member")
		return
	}
	WriteJSON(w, http.StatusCreated, member)
}

// Update handles PATCH /api/admin/team/{id}. Super admin only.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTeamMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	member, err := h.team.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		if errors.Is(err, data.ErrTeamMemberNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "team update failed", "could not update team member")
		return
	}
	WriteJSON(w, http.StatusOK, member)
}

// Delete handles DELETE /api/admin/team/{id}. Super admin only.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.team.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "team delete failed", "could not delete team member")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("team member not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
