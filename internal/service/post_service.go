package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/cache"
	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	postPageSize = 10
	postCacheTTL = 5 * time.Minute
)

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []model.Post `json:"posts"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
	Count int64        `json:"count"`
}

// PostInput carries fields for creating a post.
type PostInput struct {
	Title      string
	Content    string
	CategoryID uint
	Status     model.Status
	Image      string
}

// PostUpdate carries optional fields for a partial update; nil means unchanged.
type PostUpdate struct {
	Title      *string
	Content    *string
	CategoryID *uint
	Status     *model.Status
	Image      *string
}

// PostService handles post operations.
type PostService interface {
	List(ctx context.Context, keyword string, status model.Status, page int, isAdmin bool) (*PostPage, error)
	GetBySlug(ctx context.Context, slug string, isAdmin bool) (*model.Post, error)
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, authorID uint, in PostInput) (*model.Post, error)
	Update(ctx context.Context, id uint, in PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, cache *cache.Client) PostService {
	return &postService{
		posts:      posts,
		categories: categories,
		cache:      cache,
	}
}

func slugCacheKey(slug string) string {
	return fmt.Sprintf("post:slug:%s", slug)
}

// List returns a page of posts. Non-admin callers only ever see published
// posts regardless of the requested status filter.
func (s *postService) List(ctx context.Context, keyword string, status model.Status, page int, isAdmin bool) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	filter := repository.PostFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: postPageSize,
	}
	if isAdmin {
		if status.Valid() {
			filter.Status = status
		}
	} else {
		filter.Status = model.StatusPublished
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &PostPage{
		Posts: posts,
		Page:  page,
		Pages: int(math.Ceil(float64(total) / float64(postPageSize))),
		Count: total,
	}, nil
}

// GetBySlug looks up a post by slug. Non-admin callers are restricted to
// published posts; those lookups are served through the cache.
func (s *postService) GetBySlug(ctx context.Context, slug string, isAdmin bool) (*model.Post, error) {
	if isAdmin {
		post, err := s.posts.FindBySlug(ctx, slug, false)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrPostNotFound
			}
			return nil, err
		}
		return post, nil
	}

	var cached model.Post
	if s.cache.GetJSON(ctx, slugCacheKey(slug), &cached) {
		return &cached, nil
	}

	post, err := s.posts.FindBySlug(ctx, slug, true)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, slugCacheKey(slug), post, postCacheTTL)
	return post, nil
}

// GetByID is the admin lookup for editing, regardless of status.
func (s *postService) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Create persists a new post authored by authorID.
func (s *postService) Create(ctx context.Context, authorID uint, in PostInput) (*model.Post, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUnknownCategory
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	image := in.Image
	if image == "" {
		image = model.DefaultPostImage
	}

	post := &model.Post{
		Title:      in.Title,
		Slug:       Slugify(in.Title),
		Content:    RenderContent(in.Content),
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
		Status:     status,
		Image:      image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.posts.FindByID(ctx, post.ID)
}

// Update overwrites only the supplied fields. The slug is re-derived only when
// the title changes.
func (s *postService) Update(ctx context.Context, id uint, in PostUpdate) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}
	oldSlug := post.Slug

	if in.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrUnknownCategory
			}
			return nil, fmt.Errorf("check category: %w", err)
		}
		post.CategoryID = *in.CategoryID
		post.Category = nil
	}
	if in.Title != nil {
		post.Title = *in.Title
		post.Slug = Slugify(*in.Title)
	}
	if in.Content != nil {
		post.Content = RenderContent(*in.Content)
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if in.Image != nil {
		post.Image = *in.Image
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrSlugTaken
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.cache.Invalidate(ctx, slugCacheKey(oldSlug))
	if post.Slug != oldSlug {
		s.cache.Invalidate(ctx, slugCacheKey(post.Slug))
	}
	return s.posts.FindByID(ctx, post.ID)
}

// Delete removes a post and cascades to its comments.
func (s *postService) Delete(ctx context.Context, id uint) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPostNotFound
		}
		return err
	}

	if err := s.posts.DeleteWithComments(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.cache.Invalidate(ctx, slugCacheKey(post.Slug))
	return nil
}
