package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// Login failure messages surfaced to callers. Provider rejections carry their
// own message; everything unexpected collapses to a generic one so transport
// detail never leaks.
const (
	loginFailedMessage  = "Login failed"
	networkErrorMessage = "Network error"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider
	Logger   *slog.Logger
	// Now overrides the clock; nil means time.Now. Used by tests.
	Now func() time.Time
}

// AuthService owns the application's auth state: it verifies credentials via
// the identity provider, derives the normalized user, and holds the single
// AuthState for the running application. Construct exactly one per
// application root and inject it; all mutation flows through Login, Logout,
// and CurrentUser.
type AuthService struct {
	provider ports.IdentityProvider
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	state domainauth.AuthState
	subs  map[chan domainauth.AuthState]struct{}
}

// NewAuthService constructs a new AuthService with an empty auth state.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		provider: opts.Provider,
		logger:   logger,
		now:      now,
		subs:     make(map[chan domainauth.AuthState]struct{}),
	}
}

// LoginResult is the structured outcome of a Login call. Errors are values
// here, never returned as Go errors: the caller branches on Success and
// shows Error verbatim.
type LoginResult struct {
	Success     bool
	User        *domainauth.User
	Error       string
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies credentials against the identity provider and, on success,
// stores the normalized user as the current auth state.
//
// A provider rejection surfaces the provider's message and leaves the prior
// state untouched, so a failed re-login does not tear down an existing
// session. Transport faults surface a generic network message. The loading
// flag is cleared on every exit path.
func (s *AuthService) Login(ctx context.Context, email, password string) LoginResult {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		var provErr *ports.ProviderError
		if errors.As(err, &provErr) {
			return LoginResult{Success: false, Error: provErr.Message}
		}
		s.logger.WarnContext(ctx, "sign-in transport failure", "error", err)
		return LoginResult{Success: false, Error: networkErrorMessage}
	}
	if res == nil || res.Identity.ID == "" {
		return LoginResult{Success: false, Error: loginFailedMessage}
	}

	user := domainauth.Normalize(res.Identity, s.now())
	s.setUser(&user)

	return LoginResult{
		Success:     true,
		User:        &user,
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
	}
}

// Logout invalidates the provider-side session and clears the local state.
// The local clear is unconditional: logout is always effective from the
// caller's perspective even when remote invalidation fails.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.provider.SignOut(ctx); err != nil {
		s.logger.WarnContext(ctx, "provider sign-out failed", "error", err)
	}
	s.setUser(nil)
}

// CurrentUser refreshes the normalized user from the identity provider.
// Any failure (expired token, transport fault, absent identity) resolves to
// nil and clears the local state; nothing is surfaced beyond the nil return.
func (s *AuthService) CurrentUser(ctx context.Context) *domainauth.User {
	raw, err := s.provider.CurrentUser(ctx)
	if err != nil || raw == nil {
		s.setUser(nil)
		return nil
	}

	user := domainauth.Normalize(*raw, s.now())
	s.setUser(&user)
	return &user
}

// SuperAdmin reports whether the current identity carries the super-admin
// privilege. It is evaluated fresh against the provider on every call; the
// flag is deliberately absent from the normalized User.
func (s *AuthService) SuperAdmin(ctx context.Context) bool {
	raw, err := s.provider.CurrentUser(ctx)
	if err != nil || raw == nil {
		return false
	}
	return raw.Metadata.IsSuperAdmin()
}

// State returns a snapshot of the current auth state. The returned value is
// a copy; mutation flows only through this service's methods.
func (s *AuthService) State() domainauth.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether a user is currently signed in.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

// Subscribe registers for auth-state change notifications. The returned
// channel receives a snapshot after every state change (best effort: a slow
// consumer observes only the most recent pending snapshot). The unsubscribe
// function releases the subscription and closes the channel.
func (s *AuthService) Subscribe() (<-chan domainauth.AuthState, func()) {
	ch := make(chan domainauth.AuthState, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; !ok {
			return
		}
		delete(s.subs, ch)
		drainAndClose(ch)
	}
	return ch, unsub
}

// setUser installs (or clears) the current user, maintaining the invariant
// IsAuthenticated == (User != nil).
func (s *AuthService) setUser(u *domainauth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = u
	s.state.IsAuthenticated = u != nil
	s.broadcastLocked()
}

func (s *AuthService) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = loading
	s.broadcastLocked()
}

// snapshotLocked copies the state, including the User record, so callers
// cannot reach back into the live state. Callers must hold s.mu.
func (s *AuthService) snapshotLocked() domainauth.AuthState {
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

// broadcastLocked pushes the current snapshot to all subscribers without
// blocking. When a subscriber's buffer is full, the stale pending snapshot
// is replaced by the newer one. Callers must hold s.mu.
func (s *AuthService) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// drainAndClose removes any buffered notification before closing the channel
// so receivers observe a closed channel immediately.
func drainAndClose(ch chan domainauth.AuthState) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}
