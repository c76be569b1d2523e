package baas

// Package baas implements ports.IdentityProvider against the managed
// backend-as-a-service auth API (GoTrue-style REST endpoints under
// /auth/v1). Credential verification, token issuance, and refresh are all
// owned by the external service; this adapter only speaks its wire format.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

const (
	tokenPath  = "/auth/v1/token"
	userPath   = "/auth/v1/user"
	logoutPath = "/auth/v1/logout"

	requestTimeout = 15 * time.Second
)

// Config controls the BaaS auth client.
type Config struct {
	// BaseURL is the root of the BaaS project, e.g. https://proj.example.co.
	BaseURL string
	// APIKey is the project API key sent on every request.
	APIKey string
	// JWTSecret, when set, is used to verify the HS256 signature of issued
	// access tokens. Empty skips verification (local development).
	JWTSecret string
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Provider is the BaaS-backed identity provider. It holds the current
// oauth2 token source, which transparently refreshes the access token the
// way the original managed client library did. Identity state itself lives
// with the external service.
type Provider struct {
	baseURL   string
	apiKey    string
	jwtSecret string
	oauth     *oauth2.Config
	client    *http.Client

	mu     sync.Mutex
	tokens oauth2.TokenSource
}

// NewProvider constructs a BaaS identity provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("baas: BaseURL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("baas: APIKey is required")
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	// Wrap the transport so the project API key rides on every request,
	// including the oauth2 token exchanges.
	client = &http.Client{
		Timeout:   client.Timeout,
		Transport: &apiKeyTransport{base: client.Transport, key: cfg.APIKey},
	}

	return &Provider{
		baseURL:   base,
		apiKey:    cfg.APIKey,
		jwtSecret: cfg.JWTSecret,
		client:    client,
		oauth: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}, nil
}

// SignIn exchanges credentials for a token via the password grant, verifies
// the issued access token, and fetches the raw identity it belongs to.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &ports.ProviderError{
				Message: retrieveMessage(retrieveErr),
				Status:  retrieveStatus(retrieveErr),
			}
		}
		return nil, fmt.Errorf("password grant: %w", err)
	}

	expiresAt, err := p.verifyAccessToken(tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("verify access token: %w", err)
	}
	if expiresAt.IsZero() {
		expiresAt = tok.Expiry
	}

	identity, err := p.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.tokens = p.oauth.TokenSource(context.WithValue(context.Background(), oauth2.HTTPClient, p.client), tok)
	p.mu.Unlock()

	return &ports.SignInResult{
		Identity:    *identity,
		AccessToken: tok.AccessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// SignOut revokes the provider-side session for the current token and drops
// the local token source.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	tokens := p.tokens
	p.tokens = nil
	p.mu.Unlock()

	if tokens == nil {
		return nil
	}
	tok, err := tokens.Token()
	if err != nil {
		return fmt.Errorf("current token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+logoutPath, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer closeQuietly(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &ports.ProviderError{Message: readErrorMessage(resp.Body), Status: resp.StatusCode}
	}
	return nil
}

// CurrentUser fetches the identity backed by the currently held token,
// refreshing it transparently through the token source when needed.
func (p *Provider) CurrentUser(ctx context.Context) (*domainauth.RawIdentity, error) {
	p.mu.Lock()
	tokens := p.tokens
	p.mu.Unlock()

	if tokens == nil {
		return nil, &ports.ProviderError{Message: "no active session"}
	}
	tok, err := tokens.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &ports.ProviderError{
				Message: retrieveMessage(retrieveErr),
				Status:  retrieveStatus(retrieveErr),
			}
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return p.fetchUser(ctx, tok.AccessToken)
}

// UserFromToken fetches the identity for an explicit access token. Used for
// fresh privilege checks on behalf of a browser session.
func (p *Provider) UserFromToken(ctx context.Context, accessToken string) (*domainauth.RawIdentity, error) {
	if accessToken == "" {
		return nil, &ports.ProviderError{Message: "missing access token"}
	}
	if _, err := p.verifyAccessToken(accessToken); err != nil {
		return nil, &ports.ProviderError{Message: "invalid access token"}
	}
	return p.fetchUser(ctx, accessToken)
}

// wireUser is the provider's user payload shape.
type wireUser struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	UserMetadata domainauth.Metadata `json:"user_metadata"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (p *Provider) fetchUser(ctx context.Context, accessToken string) (*domainauth.RawIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+userPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user request: %w", err)
	}
	defer closeQuietly(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ports.ProviderError{Message: readErrorMessage(resp.Body), Status: resp.StatusCode}
	}

	var wu wireUser
	if decodeErr := json.NewDecoder(resp.Body).Decode(&wu); decodeErr != nil {
		return nil, fmt.Errorf("decode user payload: %w", decodeErr)
	}
	if wu.ID == "" {
		return nil, &ports.ProviderError{Message: "empty identity payload", Status: resp.StatusCode}
	}

	return &domainauth.RawIdentity{
		ID:        wu.ID,
		Email:     wu.Email,
		Metadata:  wu.UserMetadata,
		CreatedAt: wu.CreatedAt,
	}, nil
}

// accessTokenClaims is the subset of JWT claims we care about.
type accessTokenClaims struct {
	jwt.RegisteredClaims
}

// verifyAccessToken checks the HS256 signature when a secret is configured
// and returns the token expiry. With no secret it only extracts the expiry.
func (p *Provider) verifyAccessToken(accessToken string) (time.Time, error) {
	var claims accessTokenClaims

	if p.jwtSecret == "" {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
			return time.Time{}, fmt.Errorf("parse token: %w", err)
		}
	} else {
		_, err := jwt.ParseWithClaims(accessToken, &claims, func(_ *jwt.Token) (any, error) {
			return []byte(p.jwtSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			return time.Time{}, err
		}
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// apiKeyTransport attaches the project API key header to every request.
type apiKeyTransport struct {
	base http.RoundTripper
	key  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("apikey", t.key)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// errorPayload covers the provider's error shapes: OAuth-style
// error/error_description and the plainer msg/message variants.
type errorPayload struct {
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(body) == 0 {
		return "request failed"
	}
	var payload errorPayload
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil {
		for _, msg := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.ErrorCode} {
			if msg != "" {
				return msg
			}
		}
	}
	return "request failed"
}

func retrieveMessage(err *oauth2.RetrieveError) string {
	if err.ErrorDescription != "" {
		return err.ErrorDescription
	}
	if len(err.Body) > 0 {
		return readErrorMessage(strings.NewReader(string(err.Body)))
	}
	if err.ErrorCode != "" {
		return err.ErrorCode
	}
	return "sign-in rejected"
}

func retrieveStatus(err *oauth2.RetrieveError) int {
	if err.Response != nil {
		return err.Response.StatusCode
	}
	return 0
}

func closeQuietly(c io.Closer) {
	// Response body close failure is best-effort and ignored.
	_ = c.Close()
}
