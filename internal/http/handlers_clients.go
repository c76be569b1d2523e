package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nardonidigital/agency-api/internal/data"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

// ClientHandlerOptions groups dependencies for ClientHandler.
type ClientHandlerOptions struct {
	Clients *service.ClientService
	Logger  *slog.Logger
}

// ClientHandler serves back-office client CRUD.
type ClientHandler struct {
	clients *service.ClientService
	logger  *slog.Logger
}

// NewClientHandler constructs a new ClientHandler.
func NewClientHandler(opts ClientHandlerOptions) *ClientHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientHandler{clients: opts.Clients, logger: logger}
}

// Create handles POST /api/admin/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	client, err := h.clients.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, data.ErrClientEmailExists) {
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "client create failed", "could not create client")
		return
	}
	WriteJSON(w, http.StatusCreated, client)
}

// Get handles GET /api/admin/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clients.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, data.ErrClientNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		writeServiceError(w, r, h.logger, err, "client get failed", "could not get client")
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// List handles GET /api/admin/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r)
	clients, err := h.clients.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "client list failed", "could not list clients")
		return
	}
	WriteJSON(w, http.StatusOK, clients)
}

// Update handles PATCH /api/admin/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_error", Err: err})
		return
	}

	client, err := h.clients.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrClientNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
		case errors.Is(err, data.ErrClientEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
		default:
			writeServiceError(w, r, h.logger, err, "client update failed", "could not update client")
		}
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /api/admin/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.clients.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "client delete failed", "could not delete client")
		return
	}
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("client not found")})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
