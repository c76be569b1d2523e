package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/testutil"
)

func TestClientRepo_CreateGetUpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewClientRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.CreateClientRequest{
		Name:         "Acme Corp",
		ContactEmail: "ops@acme.example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.ClientStatusActive, created.Status)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	newName := "Acme Corporation"
	status := model.ClientStatusArchived
	updated, err := repo.Update(ctx, created.ID, model.UpdateClientRequest{
		Name:   &newName,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.Equal(t, model.ClientStatusArchived, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientRepo_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewClientRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateClientRequest{
		Name:         "First",
		ContactEmail: "dupe@acme.example",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.CreateClientRequest{
		Name:         "Second",
		ContactEmail: "dupe@acme.example",
	})
	assert.ErrorIs(t, err, ErrClientEmailExists)
}

func TestClientRepo_GetByAuthUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewClientRepo(db)
	ctx := context.Background()

	authID := "auth-user-42"
	created, err := repo.Create(ctx, &model.CreateClientRequest{
		Name:         "Portal Co",
		ContactEmail: "portal@acme.example",
		AuthUserID:   &authID,
	})
	require.NoError(t, err)

	got, err := repo.GetByAuthUserID(ctx, authID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByAuthUserID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrClientNotFound)
}
