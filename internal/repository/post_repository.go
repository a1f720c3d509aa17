package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

// PostFilter narrows the post listing.
type PostFilter struct {
	// Keyword is matched as a case-insensitive substring of the title.
	Keyword string
	// Status restricts to a single publication state when non-empty.
	Status model.Status
	// Page is 1-indexed.
	Page     int
	PageSize int
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) (posts []model.Post, total int64, err error)
	DeleteWithComments(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withRefs preloads the author and category with id and name only.
func withRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := withRefs(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error) {
	q := withRefs(r.db.WithContext(ctx)).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("status = ?", model.StatusPublished)
	}
	var post model.Post
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Keyword != "" {
		q = q.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	if err := withRefs(q).
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(filter.PageSize * (filter.Page - 1)).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// DeleteWithComments removes the post and every comment referencing it in a
// single transaction.
func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
