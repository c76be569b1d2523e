package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  everywhere  ", "spaces-everywhere"},
		{"Q3 Campaign: What's Next?", "q3-campaign-what-s-next"},
		{"ALREADY-SLUGGED", "already-slugged"},
		{"---", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestCreateBlogPostRequest_Validate(t *testing.T) {
	req := CreateBlogPostRequest{
		Title:      "Launch Announcement",
		Body:       "We are live.",
		AuthorName: "Dana",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "launch-announcement", req.Slug)
	assert.Equal(t, BlogPostStatusDraft, req.Status)

	req = CreateBlogPostRequest{Title: "No body", AuthorName: "Dana"}
	assert.Error(t, req.Validate())

	req = CreateBlogPostRequest{
		Title:      "Bad status",
		Body:       "text",
		AuthorName: "Dana",
		Status:     "archived",
	}
	assert.Error(t, req.Validate())
}

func TestUpdateBlogPostRequest_Validate(t *testing.T) {
	var empty UpdateBlogPostRequest
	assert.Error(t, empty.Validate())

	slug := "New Slug Here"
	req := UpdateBlogPostRequest{Slug: &slug}
	require.NoError(t, req.Validate())
	assert.Equal(t, "new-slug-here", *req.Slug)

	status := BlogPostStatus("Published")
	req = UpdateBlogPostRequest{Status: &status}
	require.NoError(t, req.Validate())
	assert.Equal(t, BlogPostStatusPublished, *req.Status)
}
