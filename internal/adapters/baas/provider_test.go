package baas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/ports"
)

const testJWTSecret = "test-jwt-secret"

func signTestToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "usr-1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// newTestServer serves the token, user, and logout endpoints of the BaaS API.
func newTestServer(t *testing.T, rejectLogin bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		if rejectLogin {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_grant",
				"error_description": "Invalid credentials",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  signTestToken(t, time.Now().Add(time.Hour)),
			"token_type":    "bearer",
			"refresh_token": "refresh-1",
			"expires_in":    3600,
		})
	})

	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "usr-1",
			"email": "a@b.com",
			"user_metadata": map[string]any{
				"role": "admin",
				"name": "Ava",
			},
			"created_at": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return httptest.NewServer(mux)
}

func newTestProvider(t *testing.T, serverURL string) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		BaseURL:   serverURL,
		APIKey:    "test-api-key",
		JWTSecret: testJWTSecret,
	})
	require.NoError(t, err)
	return p
}

func TestSignIn_Success(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	res, err := p.SignIn(context.Background(), "a@b.com", "goodpass")

	require.NoError(t, err)
	assert.Equal(t, "usr-1", res.Identity.ID)
	assert.Equal(t, "admin", res.Identity.Metadata.Role)
	assert.NotEmpty(t, res.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)
}

func TestSignIn_Rejection_SurfacesProviderError(t *testing.T) {
	srv := newTestServer(t, true)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	_, err := p.SignIn(context.Background(), "a@b.com", "wrongpass")

	var provErr *ports.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "Invalid credentials", provErr.Message)
}

func TestCurrentUser_WithoutSession(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	_, err := p.CurrentUser(context.Background())

	var provErr *ports.ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestCurrentUser_AfterSignIn(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	_, err := p.SignIn(context.Background(), "a@b.com", "goodpass")
	require.NoError(t, err)

	raw, err := p.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "usr-1", raw.ID)
	assert.Equal(t, "Ava", raw.Metadata.Name)
}

func TestSignOut_ClearsTokenSource(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	_, err := p.SignIn(context.Background(), "a@b.com", "goodpass")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(context.Background()))

	_, err = p.CurrentUser(context.Background())
	var provErr *ports.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "no active session", provErr.Message)
}

func TestUserFromToken_RejectsTamperedToken(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	forged := signTestToken(t, time.Now().Add(time.Hour)) + "x"
	_, err := p.UserFromToken(context.Background(), forged)

	var provErr *ports.ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestUserFromToken_Valid(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()
	p := newTestProvider(t, srv.URL)

	raw, err := p.UserFromToken(context.Background(), signTestToken(t, time.Now().Add(time.Hour)))

	require.NoError(t, err)
	assert.Equal(t, "usr-1", raw.ID)
}
