package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID: "test-session-1",
		User: domainauth.User{
			ID:    "user-123",
			Email: "user@example.com",
			Role:  domainauth.RoleClient,
		},
		AccessToken: "tok-abc",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}

	err := store.Save(ctx, session)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.User.ID, retrieved.User.ID)
	assert.Equal(t, session.User.Email, retrieved.User.Email)
	assert.Equal(t, session.User.Role, retrieved.User.Role)
	assert.Equal(t, session.AccessToken, retrieved.AccessToken)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "non-existent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-delete",
		User:      domainauth.User{ID: "user-123", Email: "user@example.com"},
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))

	_, err := store.Get(ctx, "test-session-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err = store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_RejectsExpiredOnSave(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-expired",
		User:      domainauth.User{ID: "user-123"},
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	assert.Error(t, store.Save(ctx, session))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	a := NewSessionStoreWithPrefix(client, "a:")
	b := NewSessionStoreWithPrefix(client, "b:")

	session := domainauth.Session{
		ID:        "shared-id",
		User:      domainauth.User{ID: "user-123"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, a.Save(ctx, session))

	_, err := b.Get(ctx, "shared-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.Get(ctx, "shared-id")
	assert.NoError(t, err)
}
