package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/service"
)

// AuthHandlerOptions groups dependencies for AuthHandler.
type AuthHandlerOptions struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
	Logger   *slog.Logger
}

// AuthHandler serves login, logout, and session status.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	logger   *slog.Logger
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(opts AuthHandlerOptions) *AuthHandler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:     opts.Auth,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domainauth.User `json:"user,omitempty"`
}

// Login verifies credentials, mints a session, and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_error",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	result := h.auth.Login(r.Context(), req.Email, req.Password)
	if !result.Success {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "login_failed",
			Err:     errors.New(result.Error),
		})
		return
	}

	sess, err := h.sessions.Create(r.Context(), result)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "session create failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("could not create session"),
		})
		return
	}

	setSessionCookie(w, r, sess.ID, sess.ExpiresAt)
	h.logger.InfoContext(r.Context(), "user logged in", "user_id", result.User.ID, "role", result.User.Role)
	WriteJSON(w, http.StatusOK, statusResponse{Authenticated: true, User: result.User})
}

// Logout deletes the session and clears the cookie. Always succeeds from
// the caller's perspective.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.WarnContext(r.Context(), "session delete failed", "error", err)
		}
	}
	h.auth.Logout(r.Context())
	clearSessionCookie(w, r)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Status reports whether the request carries an authenticated session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, statusResponse{Authenticated: false})
		return
	}
	user := sess.User
	WriteJSON(w, http.StatusOK, statusResponse{Authenticated: true, User: &user})
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
