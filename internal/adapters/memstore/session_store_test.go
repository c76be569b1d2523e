package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
)

func testSession(id string, expiresAt time.Time) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		User:      domainauth.User{ID: "usr-1", Email: "a@b.com", Role: domainauth.RoleAdmin},
		ExpiresAt: expiresAt,
	}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	sess := testSession("s1", time.Now().Add(time.Hour))

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.User.Email, got.User.Email)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_RejectsEmptyAndExpired(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, testSession("", time.Now().Add(time.Hour))))
	assert.Error(t, store.Save(ctx, testSession("s1", time.Now().Add(-time.Minute))))
}

func TestSessionStore_ExpiredSessionEvictedOnGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := testSession("s1", time.Now().Add(20*time.Millisecond))
	require.NoError(t, store.Save(ctx, sess))

	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
