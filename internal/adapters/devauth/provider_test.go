package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/ports"
)

func newDevProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		UserID:     "dev-user",
		Email:      "dev@agency.local",
		Password:   "dev-password",
		Role:       "admin",
		SuperAdmin: true,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresCredentials(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@agency.local", Password: "x"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user", Password: "x"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user", Email: "dev@agency.local"})
	assert.Error(t, err)
}

func TestSignIn_GoodAndBadCredentials(t *testing.T) {
	p := newDevProvider(t)
	ctx := context.Background()

	res, err := p.SignIn(ctx, "DEV@agency.local", "dev-password")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", res.Identity.ID)
	assert.True(t, res.Identity.Metadata.SuperAdmin)
	assert.NotEmpty(t, res.AccessToken)

	_, err = p.SignIn(ctx, "dev@agency.local", "nope")
	var provErr *ports.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "Invalid login credentials", provErr.Message)

	_, err = p.SignIn(ctx, "other@agency.local", "dev-password")
	require.ErrorAs(t, err, &provErr)
}

func TestCurrentUser_TracksSignInState(t *testing.T) {
	p := newDevProvider(t)
	ctx := context.Background()

	_, err := p.CurrentUser(ctx)
	assert.Error(t, err)

	_, err = p.SignIn(ctx, "dev@agency.local", "dev-password")
	require.NoError(t, err)

	raw, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", raw.ID)

	require.NoError(t, p.SignOut(ctx))
	_, err = p.CurrentUser(ctx)
	assert.Error(t, err)
}

func TestUserFromToken_OnlyAcceptsIssuedTokens(t *testing.T) {
	p := newDevProvider(t)
	ctx := context.Background()

	res, err := p.SignIn(ctx, "dev@agency.local", "dev-password")
	require.NoError(t, err)

	raw, err := p.UserFromToken(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", raw.ID)

	_, err = p.UserFromToken(ctx, "never-issued")
	assert.Error(t, err)
}
