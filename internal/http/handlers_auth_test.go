package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/adapters/devauth"
	"github.com/nardonidigital/agency-api/internal/adapters/memstore"
	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
	"github.com/nardonidigital/agency-api/internal/service"
)

type authFixture struct {
	provider ports.IdentityProvider
	auth     *service.AuthService
	sessions *service.SessionService
	handler  *AuthHandler
	mw       *Middleware
}

func newAuthFixture(t *testing.T, cfg devauth.Config) *authFixture {
	t.Helper()

	provider, err := devauth.NewProvider(cfg)
	require.NoError(t, err)

	auth := service.NewAuthService(service.AuthServiceOptions{Provider: provider})
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: memstore.NewSessionStore()})

	return &authFixture{
		provider: provider,
		auth:     auth,
		sessions: sessions,
		handler:  NewAuthHandler(AuthHandlerOptions{Auth: auth, Sessions: sessions}),
		mw: NewMiddleware(MiddlewareOptions{
			Sessions: sessions,
			Provider: provider,
		}),
	}
}

func adminDevConfig() devauth.Config {
	return devauth.Config{
		UserID:   "dev-user-1",
		Email:    "admin@example.com",
		Password: "s3cret-pass",
		Role:     "admin",
		Name:     "Dev Admin",
	}
}

func doLogin(t *testing.T, f *authFixture, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.Login(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAuthFixture(t, adminDevConfig())

	rec := doLogin(t, f, "admin@example.com", "s3cret-pass")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Authenticated bool             `json:"authenticated"`
		User          *domainauth.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, "dev-user-1", resp.User.ID)
	assert.Equal(t, domainauth.RoleAdmin, resp.User.Role)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	sess, err := f.sessions.Get(t.Context(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "dev-user-1", sess.User.ID)
	assert.NotEmpty(t, sess.AccessToken)
}

func TestAuthHandler_LoginRejections(t *testing.T) {
	f := newAuthFixture(t, adminDevConfig())

	t.Run("wrong password", func(t *testing.T) {
		rec := doLogin(t, f, "admin@example.com", "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid login credentials")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := doLogin(t, f, "nobody@example.com", "s3cret-pass")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doLogin(t, f, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		f.handler.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_StatusAndLogout(t *testing.T) {
	f := newAuthFixture(t, adminDevConfig())

	loginRec := doLogin(t, f, "admin@example.com", "s3cret-pass")
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookie := loginRec.Result().Cookies()[0]

	status := f.mw.WithSession(http.HandlerFunc(f.handler.Status))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	status.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	f.handler.Logout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The session is gone; status now reports unauthenticated.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	status.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}
