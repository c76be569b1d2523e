package service

import (
	"context"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// BlogService orchestrates blog post CRUD and the public published views.
type BlogService struct {
	posts core.BlogRepository
}

// NewBlogService constructs a new BlogService.
func NewBlogService(posts core.BlogRepository) *BlogService {
	return &BlogService{posts: posts}
}

// Create creates a post.
func (s *BlogService) Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	return s.posts.Create(ctx, req)
}

// GetByID retrieves a post by ID regardless of status.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// GetPublishedBySlug retrieves a published post for the public site.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return s.posts.GetPublishedBySlug(ctx, slug)
}

// ListPublished returns published posts for the public site, newest first.
func (s *BlogService) ListPublished(ctx context.Context, limit, offset int) ([]*model.BlogPost, error) {
	published := model.BlogPostStatusPublished
	return s.posts.List(ctx, model.BlogPostListOptions{
		Limit:  limit,
		Offset: offset,
		Status: &published,
	})
}

// List returns posts with filters for the back office.
func (s *BlogService) List(ctx context.Context, opts model.BlogPostListOptions) ([]*model.BlogPost, error) {
	return s.posts.List(ctx, opts)
}

// Update updates a post.
func (s *BlogService) Update(ctx context.Context, id string, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	return s.posts.Update(ctx, id, req)
}

// Delete deletes a post.
func (s *BlogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.posts.Delete(ctx, id)
}
