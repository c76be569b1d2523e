package devauth

// Package devauth provides a config-driven IdentityProvider for local
// development. It short-circuits the external BaaS with a single fixed
// identity and a bcrypt-checked password.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID string
	Email  string
	// Password is the accepted plaintext password; it is bcrypt-hashed at
	// construction so verification goes through the same path production
	// credentials would.
	Password        string
	Role            string
	Name            string
	SuperAdmin      bool
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	identity        domainauth.RawIdentity
	email           string
	passwordHash    []byte
	sessionDuration time.Duration

	mu       sync.Mutex
	tokens   map[string]time.Time // issued token -> expiry
	signedIn bool
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash dev password: %w", err)
	}

	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}

	return &Provider{
		identity: domainauth.RawIdentity{
			ID:    cfg.UserID,
			Email: cfg.Email,
			Metadata: domainauth.Metadata{
				Role:       cfg.Role,
				Name:       cfg.Name,
				SuperAdmin: cfg.SuperAdmin,
			},
			CreatedAt: time.Now(),
		},
		email:           strings.ToLower(cfg.Email),
		passwordHash:    hash,
		sessionDuration: dur,
		tokens:          make(map[string]time.Time),
	}, nil
}

// SignIn verifies the configured credentials and issues a random token.
func (p *Provider) SignIn(_ context.Context, email, password string) (*ports.SignInResult, error) {
	// Hide whether the account exists; both mismatches report the same way.
	if strings.ToLower(email) != p.email {
		return nil, &ports.ProviderError{Message: "Invalid login credentials", Status: 400}
	}
	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return nil, &ports.ProviderError{Message: "Invalid login credentials", Status: 400}
	}

	token, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	expires := time.Now().Add(p.sessionDuration)

	p.mu.Lock()
	p.tokens[token] = expires
	p.signedIn = true
	p.mu.Unlock()

	return &ports.SignInResult{
		Identity:    p.identity,
		AccessToken: token,
		ExpiresAt:   expires,
	}, nil
}

// SignOut forgets the dev session.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.signedIn = false
	p.mu.Unlock()
	return nil
}

// CurrentUser returns the configured identity while signed in.
func (p *Provider) CurrentUser(_ context.Context) (*domainauth.RawIdentity, error) {
	p.mu.Lock()
	signedIn := p.signedIn
	p.mu.Unlock()

	if !signedIn {
		return nil, &ports.ProviderError{Message: "no active session", Status: 401}
	}
	identity := p.identity
	return &identity, nil
}

// UserFromToken returns the identity for a token this provider issued.
func (p *Provider) UserFromToken(_ context.Context, accessToken string) (*domainauth.RawIdentity, error) {
	p.mu.Lock()
	expires, ok := p.tokens[accessToken]
	p.mu.Unlock()

	if !ok || time.Now().After(expires) {
		return nil, &ports.ProviderError{Message: "invalid access token", Status: 401}
	}
	identity := p.identity
	return &identity, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
