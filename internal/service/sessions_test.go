package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/mocks"
	"github.com/nardonidigital/agency-api/internal/service"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func successfulLogin(expires time.Time) service.LoginResult {
	return service.LoginResult{
		Success: true,
		User: &domainauth.User{
			ID:    "user-1",
			Email: "owner@acme.test",
			Name:  "Owner",
			Role:  domainauth.RoleClient,
		},
		AccessToken: "token-abc",
		ExpiresAt:   expires,
	}
}

func TestSessionServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	var saved domainauth.Session
	store.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess domainauth.Session) error {
			saved = sess
			return nil
		})

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	expires := fixedNow().Add(time.Hour)
	sess, err := svc.Create(t.Context(), successfulLogin(expires))
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "user-1", sess.User.ID)
	assert.Equal(t, "token-abc", sess.AccessToken)
	assert.Equal(t, expires, sess.ExpiresAt)
	assert.Equal(t, *sess, saved)
}

func TestSessionServiceCreateDefaultsExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	sess, err := svc.Create(t.Context(), successfulLogin(time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, fixedNow().Add(service.DefaultSessionDuration), sess.ExpiresAt)
}

func TestSessionServiceCreateRejectsFailedLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	_, err := svc.Create(t.Context(), service.LoginResult{Success: false, Error: "Invalid login credentials"})
	require.Error(t, err)
}

func TestSessionServiceCreateSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	sess, err := svc.Create(t.Context(), successfulLogin(fixedNow().Add(time.Hour)))
	require.Error(t, err)
	assert.Nil(t, sess)
}

func TestSessionServiceGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	stored := domainauth.Session{
		ID:          "sess-1",
		User:        domainauth.User{ID: "user-1", Role: domainauth.RoleAdmin},
		AccessToken: "token-abc",
		ExpiresAt:   fixedNow().Add(time.Hour),
	}
	store.EXPECT().Get(gomock.Any(), "sess-1").Return(stored, nil)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	sess, err := svc.Get(t.Context(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, stored, *sess)
}

func TestSessionServiceGetExpiredDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	stored := domainauth.Session{
		ID:        "sess-1",
		User:      domainauth.User{ID: "user-1"},
		ExpiresAt: fixedNow().Add(-time.Minute),
	}
	store.EXPECT().Get(gomock.Any(), "sess-1").Return(stored, nil)
	store.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	sess, err := svc.Get(t.Context(), "sess-1")
	require.Error(t, err)
	assert.Nil(t, sess)
}

func TestSessionServiceGetRequiresID(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	_, err := svc.Get(t.Context(), "")
	require.Error(t, err)
}

func TestSessionServiceDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)

	svc := service.NewSessionService(service.SessionServiceOptions{Store: store, Now: fixedNow})

	require.NoError(t, svc.Delete(t.Context(), "sess-1"))
	require.NoError(t, svc.Delete(t.Context(), ""))
}
