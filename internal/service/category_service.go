package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CategoryService handles category operations.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, id uint, name string) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// Create adds a category with a derived slug; the name must be unused.
func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	existing, err := s.categories.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, errors.ErrCategoryExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category := &model.Category{
		Name: name,
		Slug: Slugify(name),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Update renames a category. An empty name leaves it unchanged.
func (s *categoryService) Update(ctx context.Context, id uint, name string) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" && name != category.Name {
		existing, err := s.categories.FindByName(ctx, name)
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.ErrCategoryExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check category existence: %w", err)
		}
		category.Name = name
		category.Slug = Slugify(name)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrCategoryExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Posts still referencing it keep their dangling
// category id; no reassignment is performed.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCategoryNotFound
		}
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
