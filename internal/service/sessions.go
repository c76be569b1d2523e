package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

var errSessionExpired = errors.New("session expired")

// DefaultSessionDuration bounds a browser session when the provider token
// carries no usable expiry.
const DefaultSessionDuration = 8 * time.Hour

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store ports.SessionStore
	// Now overrides the clock; nil means time.Now. Used by tests.
	Now func() time.Time
}

// SessionService persists per-browser sessions keyed by an opaque session ID.
// Each session carries the normalized user the auth service produced at login
// plus the provider access token, so privilege checks can be re-evaluated
// fresh against the provider on behalf of that browser.
type SessionService struct {
	store ports.SessionStore
	now   func() time.Time
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionService{store: opts.Store, now: now}
}

// Create mints and persists a session from a successful login result.
func (s *SessionService) Create(ctx context.Context, login LoginResult) (*domainauth.Session, error) {
	if !login.Success || login.User == nil {
		return nil, errors.New("login result is not a success")
	}

	expires := login.ExpiresAt
	if expires.IsZero() || !expires.After(s.now()) {
		expires = s.now().Add(DefaultSessionDuration)
	}

	sess := domainauth.Session{
		ID:          uuid.NewString(),
		User:        *login.User,
		AccessToken: login.AccessToken,
		ExpiresAt:   expires,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}

// Get retrieves a session by ID, deleting it when expired.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(sess.ExpiresAt) {
		if deleteErr := s.store.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &sess, nil
}

// Delete removes a session. A missing or empty ID is a no-op.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
