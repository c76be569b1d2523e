package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/testutil"
)

func TestBlogRepo_PublishLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewBlogRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "Why Brand Voice Matters",
		Body:       "Long form content here.",
		AuthorName: "Dana",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BlogPostStatusDraft, created.Status)
	assert.Equal(t, "why-brand-voice-matters", created.Slug)
	assert.Nil(t, created.PublishedAt)

	// Drafts are invisible to the public lookup.
	_, err = repo.GetPublishedBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	published := model.BlogPostStatusPublished
	updated, err := repo.Update(ctx, created.ID, model.UpdateBlogPostRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstPublish := *updated.PublishedAt

	got, err := repo.GetPublishedBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Re-publishing must not move the original publish timestamp.
	draft := model.BlogPostStatusDraft
	_, err = repo.Update(ctx, created.ID, model.UpdateBlogPostRequest{Status: &draft})
	require.NoError(t, err)
	again, err := repo.Update(ctx, created.ID, model.UpdateBlogPostRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), again.PublishedAt.Unix())
}

func TestBlogRepo_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewBlogRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "SEO Basics",
		Body:       "body",
		AuthorName: "Dana",
		Status:     model.BlogPostStatusPublished,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "Draft Notes",
		Body:       "body",
		AuthorName: "Dana",
	})
	require.NoError(t, err)

	published := model.BlogPostStatusPublished
	posts, err := repo.List(ctx, model.BlogPostListOptions{Status: &published})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "SEO Basics", posts[0].Title)

	q := "seo"
	posts, err = repo.List(ctx, model.BlogPostListOptions{Q: &q})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "seo-basics", posts[0].Slug)
}

func TestBlogRepo_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewBlogRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "Same Title",
		Body:       "body",
		AuthorName: "Dana",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.CreateBlogPostRequest{
		Title:      "Same Title",
		Body:       "other body",
		AuthorName: "Lee",
	})
	assert.ErrorIs(t, err, ErrBlogSlugExists)
}
