package httpx

import (
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// SettingsHandlerOptions groups dependencies for SettingsHandler.
type SettingsHandlerOptions struct {
	Settings *service.SettingsService
	Logger   *slog.Logger
}

// SettingsHandler serves the agency-wide settings row. The public read feeds
// the brochure site footer; updates live in the back office.
type SettingsHandler struct {
	settings *service.SettingsService
	logger   *slog.Logger
}

// NewSettingsHandler constructs a new SettingsHandler.
func NewSettingsHandler(opts SettingsHandlerOptions) *SettingsHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{settings: opts.Settings, logger: logger}
}

// Get handles GET /api/settings. Public endpoint.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "settings get failed", "could not get settings")
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// Update handles PATCH /api/admin/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCompanySettingsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	settings, err := h.settings.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "settings update failed", "could not update settings")
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}
