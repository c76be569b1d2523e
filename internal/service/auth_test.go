package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// stubProvider is a hand-rolled test double for ports.IdentityProvider.
type stubProvider struct {
	signInFunc      func(ctx context.Context, email, password string) (*ports.SignInResult, error)
	signOutFunc     func(ctx context.Context) error
	currentUserFunc func(ctx context.Context) (*domainauth.RawIdentity, error)
}

func (p *stubProvider) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	if p.signInFunc != nil {
		return p.signInFunc(ctx, email, password)
	}
	return nil, errors.New("signIn not configured")
}

func (p *stubProvider) SignOut(ctx context.Context) error {
	if p.signOutFunc != nil {
		return p.signOutFunc(ctx)
	}
	return nil
}

func (p *stubProvider) CurrentUser(ctx context.Context) (*domainauth.RawIdentity, error) {
	if p.currentUserFunc != nil {
		return p.currentUserFunc(ctx)
	}
	return nil, &ports.ProviderError{Message: "no session"}
}

func (p *stubProvider) UserFromToken(ctx context.Context, _ string) (*domainauth.RawIdentity, error) {
	return p.CurrentUser(ctx)
}

func adminIdentity() domainauth.RawIdentity {
	return domainauth.RawIdentity{
		ID:        "usr-1",
		Email:     "a@b.com",
		Metadata:  domainauth.Metadata{Role: "admin", Name: "Ava"},
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func newTestAuthService(p ports.IdentityProvider) *AuthService {
	return NewAuthService(AuthServiceOptions{Provider: p})
}

// requireStateInvariant asserts IsAuthenticated == (User != nil).
func requireStateInvariant(t *testing.T, svc *AuthService) {
	t.Helper()
	state := svc.State()
	require.Equal(t, state.User != nil, state.IsAuthenticated)
}

func TestLogin_Success_AdminRole(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, email, password string) (*ports.SignInResult, error) {
			assert.Equal(t, "a@b.com", email)
			assert.Equal(t, "goodpass", password)
			return &ports.SignInResult{
				Identity:    adminIdentity(),
				AccessToken: "tok",
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		},
	}
	svc := newTestAuthService(provider)

	result := svc.Login(context.Background(), "a@b.com", "goodpass")

	require.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, domainauth.RoleAdmin, result.User.Role)
	assert.Equal(t, "Ava", result.User.Name)
	assert.True(t, svc.IsAuthenticated())
	assert.False(t, svc.State().IsLoading)
	requireStateInvariant(t, svc)
}

func TestLogin_ProviderRejection_SurfacesMessageAndPreservesState(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return nil, &ports.ProviderError{Message: "Invalid credentials", Status: 400}
		},
	}
	svc := newTestAuthService(provider)

	result := svc.Login(context.Background(), "a@b.com", "wrongpass")

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials", result.Error)
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.State().User)
	requireStateInvariant(t, svc)
}

func TestLogin_FailedLoginPreservesPriorSession(t *testing.T) {
	calls := 0
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			calls++
			if calls == 1 {
				return &ports.SignInResult{Identity: adminIdentity()}, nil
			}
			return nil, &ports.ProviderError{Message: "Invalid credentials"}
		},
	}
	svc := newTestAuthService(provider)

	first := svc.Login(context.Background(), "a@b.com", "goodpass")
	require.True(t, first.Success)

	second := svc.Login(context.Background(), "a@b.com", "wrongpass")
	assert.False(t, second.Success)

	// The earlier authenticated session survives the failed attempt.
	state := svc.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "usr-1", state.User.ID)
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	requireStateInvariant(t, svc)
}

func TestLogin_EmptyIdentityOnSuccess(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return &ports.SignInResult{}, nil
		},
	}
	svc := newTestAuthService(provider)

	result := svc.Login(context.Background(), "a@b.com", "pw")

	assert.False(t, result.Success)
	assert.Equal(t, "Login failed", result.Error)
	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_TransportFailure_GenericMessage(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	svc := newTestAuthService(provider)

	result := svc.Login(context.Background(), "a@b.com", "pw")

	assert.False(t, result.Success)
	// Transport detail never leaks to the caller.
	assert.Equal(t, "Network error", result.Error)
	assert.False(t, svc.State().IsLoading)
}

func TestLogin_LoadingFlagClearedEvenOnPanic(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			panic("boom")
		},
	}
	svc := newTestAuthService(provider)

	assert.Panics(t, func() {
		svc.Login(context.Background(), "a@b.com", "pw")
	})
	assert.False(t, svc.State().IsLoading)
}

func TestLogout_AlwaysClears(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return &ports.SignInResult{Identity: adminIdentity()}, nil
		},
		signOutFunc: func(_ context.Context) error {
			return errors.New("remote revocation failed")
		},
	}
	svc := newTestAuthService(provider)

	require.True(t, svc.Login(context.Background(), "a@b.com", "pw").Success)
	svc.Logout(context.Background())

	// Local state clears even though the provider call failed.
	state := svc.State()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAuthenticated)
	requireStateInvariant(t, svc)
}

func TestCurrentUser_RefreshesState(t *testing.T) {
	provider := &stubProvider{
		currentUserFunc: func(_ context.Context) (*domainauth.RawIdentity, error) {
			raw := adminIdentity()
			return &raw, nil
		},
	}
	svc := newTestAuthService(provider)

	user := svc.CurrentUser(context.Background())

	require.NotNil(t, user)
	assert.Equal(t, domainauth.RoleAdmin, user.Role)
	assert.True(t, svc.IsAuthenticated())
	requireStateInvariant(t, svc)
}

func TestCurrentUser_FailureClearsStateSilently(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return &ports.SignInResult{Identity: adminIdentity()}, nil
		},
		currentUserFunc: func(_ context.Context) (*domainauth.RawIdentity, error) {
			return nil, errors.New("token expired")
		},
	}
	svc := newTestAuthService(provider)
	require.True(t, svc.Login(context.Background(), "a@b.com", "pw").Success)

	user := svc.CurrentUser(context.Background())

	assert.Nil(t, user)
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.State().User)
	requireStateInvariant(t, svc)
}

func TestStateInvariantAcrossCallSequences(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, password string) (*ports.SignInResult, error) {
			if password == "good" {
				return &ports.SignInResult{Identity: adminIdentity()}, nil
			}
			return nil, &ports.ProviderError{Message: "Invalid credentials"}
		},
		currentUserFunc: func(_ context.Context) (*domainauth.RawIdentity, error) {
			return nil, &ports.ProviderError{Message: "no session"}
		},
	}
	svc := newTestAuthService(provider)

	ctx := context.Background()
	svc.Login(ctx, "a@b.com", "bad")
	requireStateInvariant(t, svc)
	svc.Login(ctx, "a@b.com", "good")
	requireStateInvariant(t, svc)
	svc.CurrentUser(ctx)
	requireStateInvariant(t, svc)
	svc.Login(ctx, "a@b.com", "good")
	requireStateInvariant(t, svc)
	svc.Logout(ctx)
	requireStateInvariant(t, svc)
}

func TestSuperAdmin_FreshEvaluationFailClosed(t *testing.T) {
	identity := adminIdentity()
	provider := &stubProvider{
		currentUserFunc: func(_ context.Context) (*domainauth.RawIdentity, error) {
			raw := identity
			return &raw, nil
		},
	}
	svc := newTestAuthService(provider)

	// Admin role alone does not grant the super-admin privilege.
	assert.False(t, svc.SuperAdmin(context.Background()))

	identity.Metadata.SuperAdmin = true
	assert.True(t, svc.SuperAdmin(context.Background()))

	provider.currentUserFunc = func(_ context.Context) (*domainauth.RawIdentity, error) {
		return nil, errors.New("unreachable")
	}
	assert.False(t, svc.SuperAdmin(context.Background()))
}

func TestSubscribe_NotifiesOnStateChanges(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return &ports.SignInResult{Identity: adminIdentity()}, nil
		},
	}
	svc := newTestAuthService(provider)

	ch, unsub := svc.Subscribe()
	defer unsub()

	require.True(t, svc.Login(context.Background(), "a@b.com", "pw").Success)

	// The most recent pending snapshot reflects the settled login.
	var last domainauth.AuthState
	for {
		select {
		case snap := <-ch:
			last = snap
			continue
		default:
		}
		break
	}
	require.NotNil(t, last.User)
	assert.True(t, last.IsAuthenticated)
	assert.False(t, last.IsLoading)
}

func TestState_ReturnsCopy(t *testing.T) {
	provider := &stubProvider{
		signInFunc: func(_ context.Context, _, _ string) (*ports.SignInResult, error) {
			return &ports.SignInResult{Identity: adminIdentity()}, nil
		},
	}
	svc := newTestAuthService(provider)
	require.True(t, svc.Login(context.Background(), "a@b.com", "pw").Success)

	snap := svc.State()
	snap.User.Name = "mutated"

	assert.Equal(t, "Ava", svc.State().User.Name)
}
