package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
)

// ProviderError is a rejection reported by the identity provider itself
// (invalid credentials, disabled account). The Message is safe to surface
// to the caller; transport faults are plain errors and must not be.
type ProviderError struct {
	Message string
	Status  int
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.Status)
	}
	return "identity provider: " + e.Message
}

// SignInResult carries the outcome of a successful credential sign-in.
type SignInResult struct {
	Identity    domainauth.RawIdentity
	AccessToken string
	ExpiresAt   time.Time
}

// IdentityProvider isolates all direct calls to the external identity
// service. Every call is a round trip to the external service; the adapter
// may cache the current token source but owns no identity state of its own.
type IdentityProvider interface {
	// SignIn verifies credentials and returns the raw identity plus the
	// provider-issued access token.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// SignOut invalidates the provider-side session for the current token.
	SignOut(ctx context.Context) error

	// CurrentUser returns the identity backed by the currently held token,
	// or a ProviderError when no valid session exists.
	CurrentUser(ctx context.Context) (*domainauth.RawIdentity, error)

	// UserFromToken returns the identity for an explicit access token.
	// Used for fresh privilege checks on behalf of a browser session.
	UserFromToken(ctx context.Context, accessToken string) (*domainauth.RawIdentity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
