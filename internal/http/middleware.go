package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "agency_session"

// SessionResolver resolves a session ID from the cookie to a live session.
type SessionResolver interface {
	Get(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// MiddlewareOptions groups dependencies for Middleware.
type MiddlewareOptions struct {
	Sessions SessionResolver
	Provider ports.IdentityProvider
	Logger   *slog.Logger
}

// Middleware bundles the request middlewares that need access to sessions
// and the identity provider.
type Middleware struct {
	sessions SessionResolver
	provider ports.IdentityProvider
	logger   *slog.Logger
}

// NewMiddleware constructs the middleware set.
func NewMiddleware(opts MiddlewareOptions) *Middleware {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{
		sessions: opts.Sessions,
		provider: opts.Provider,
		logger:   logger,
	}
}

// respWriter captures the status code for request logging.
type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logging logs each request with method, path, status, and duration.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &respWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Recover converts panics into 500 responses and logs the stack.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "internal_error",
					Err:     errors.New("internal server error"),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WithSession resolves the session cookie and attaches the session to the
// request context. Requests without a valid session pass through
// unauthenticated; the guards below decide whether that is acceptable.
func (m *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
	})
}

// RequireAuth rejects requests without a session. Browser navigations are
// redirected to the login page; API calls get a 401 JSON body.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			m.denyUnauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose session role does not exactly match the
// required role. There is no role hierarchy: an admin is not implicitly a
// client and a client is never an admin. A browser navigating with the wrong
// role is sent back to the login page so it can re-authenticate as an
// identity that fits; API calls get a 403 JSON body.
func (m *Middleware) RequireRole(required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				m.denyUnauthenticated(w, r)
				return
			}
			if !sess.HasRole(required) {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "forbidden",
					Err:     errors.New("insufficient role"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin gates destructive operations behind the super-admin
// privilege. The flag is re-read from the identity provider on every request
// using the session's access token; it is never trusted from the stored
// session, and any provider failure denies.
func (m *Middleware) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok {
			m.denyUnauthenticated(w, r)
			return
		}

		raw, err := m.provider.UserFromToken(r.Context(), sess.AccessToken)
		if err != nil || raw == nil || !raw.Metadata.IsSuperAdmin() {
			if err != nil {
				m.logger.WarnContext(r.Context(), "super-admin check failed", "error", err)
			}
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: "forbidden",
				Err:     errors.New("super-admin privilege required"),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "unauthorized",
		Err:     errors.New("authentication required"),
	})
}

// IsBrowserRequest reports whether the request looks like a browser
// navigation rather than an API call.
func IsBrowserRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// redirectToLogin sends the browser to the login page, preserving the
// requested path so login can return the user there.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/auth/login"
	if next := safeRedirectPath(r.URL.RequestURI()); next != "" && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirectPath accepts only same-origin absolute paths. Anything that
// could be interpreted as a different host is dropped.
func safeRedirectPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	return p
}
