package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
)

type fakeSessionResolver struct {
	sessions map[string]*domainauth.Session
}

func (f *fakeSessionResolver) Get(_ context.Context, id string) (*domainauth.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func newSession(role domainauth.Role, token string) *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-" + string(role),
		User:        domainauth.User{ID: "user-1", Email: "u@example.com", Role: role},
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func newTestMiddleware(t *testing.T, sessions map[string]*domainauth.Session) *Middleware {
	t.Helper()
	return NewMiddleware(MiddlewareOptions{
		Sessions: &fakeSessionResolver{sessions: sessions},
		Logger:   slog.New(slog.NewTextHandler(testWriter{t}, nil)),
	})
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_ExactMatchOnly(t *testing.T) {
	tests := []struct {
		name     string
		sessRole domainauth.Role
		required domainauth.Role
		want     int
	}{
		{"admin on admin route", domainauth.RoleAdmin, domainauth.RoleAdmin, http.StatusOK},
		{"client on client route", domainauth.RoleClient, domainauth.RoleClient, http.StatusOK},
		{"client on admin route", domainauth.RoleClient, domainauth.RoleAdmin, http.StatusForbidden},
		{"admin on client route", domainauth.RoleAdmin, domainauth.RoleClient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession(tt.sessRole, "tok")
			mw := newTestMiddleware(t, map[string]*domainauth.Session{sess.ID: sess})

			handler := mw.WithSession(mw.RequireRole(tt.required)(okHandler()))

			// API-shaped request: no Accept: text/html.
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRole_BrowserMismatchRedirectsToLogin(t *testing.T) {
	sess := newSession(domainauth.RoleClient, "tok")
	mw := newTestMiddleware(t, map[string]*domainauth.Session{sess.ID: sess})
	handler := mw.WithSession(mw.RequireRole(domainauth.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/auth/login")
	assert.Contains(t, rec.Header().Get("Location"), "next=%2Fadmin%2Fclients")
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	mw := newTestMiddleware(t, nil)
	handler := mw.WithSession(mw.RequireRole(domainauth.RoleAdmin)(okHandler()))

	t.Run("api call gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("browser navigation redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded?tab=1", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/auth/login")
		assert.Contains(t, rec.Header().Get("Location"), "next=")
	})
}

func TestRequireRole_UnknownSessionCookie(t *testing.T) {
	mw := newTestMiddleware(t, nil)
	handler := mw.WithSession(mw.RequireRole(domainauth.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "no-such-session"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	mw := newTestMiddleware(t, nil)
	handler := mw.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSafeRedirectPath(t *testing.T) {
	assert.Equal(t, "/admin/clients", safeRedirectPath("/admin/clients"))
	assert.Equal(t, "", safeRedirectPath("//evil.example.com"))
	assert.Equal(t, "", safeRedirectPath("/\\evil.example.com"))
	assert.Equal(t, "", safeRedirectPath("https://evil.example.com"))
	assert.Equal(t, "", safeRedirectPath(""))
}
