package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) DeleteWithComments(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func TestPostService_List(t *testing.T) {
	tests := []struct {
		name           string
		status         model.Status
		isAdmin        bool
		expectedStatus model.Status
	}{
		{"anonymous always sees published", "", false, model.StatusPublished},
		{"non-admin cannot request drafts", model.StatusDraft, false, model.StatusPublished},
		{"admin may filter by draft", model.StatusDraft, true, model.StatusDraft},
		{"admin without filter sees everything", "", true, ""},
		{"admin with bogus status sees everything", "bogus", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPosts := new(MockPostRepository)
			mockPosts.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostFilter) bool {
				return f.Status == tt.expectedStatus && f.Page == 1 && f.PageSize == 10
			})).Return([]model.Post{}, int64(0), nil)

			service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
			page, err := service.List(context.Background(), "", tt.status, 0, tt.isAdmin)

			assert.NoError(t, err)
			assert.Equal(t, 1, page.Page)
			mockPosts.AssertExpectations(t)
		})
	}
}

func TestPostService_ListPagination(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockPosts.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostFilter) bool {
		return f.Page == 3 && f.Keyword == "go"
	})).Return(make([]model.Post, 10), int64(25), nil)

	service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
	page, err := service.List(context.Background(), "go", "", 3, true)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, int64(25), page.Count)
}

func TestPostService_GetBySlug(t *testing.T) {
	t.Run("non-admin lookup is restricted to published", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindBySlug", mock.Anything, "hidden-draft", true).Return(nil, gorm.ErrRecordNotFound)

		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		_, err := service.GetBySlug(context.Background(), "hidden-draft", false)

		assert.Equal(t, errors.ErrPostNotFound, err)
		mockPosts.AssertExpectations(t)
	})

	t.Run("admin lookup sees drafts", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindBySlug", mock.Anything, "hidden-draft", false).Return(&model.Post{
			ID:     1,
			Slug:   "hidden-draft",
			Status: model.StatusDraft,
		}, nil)

		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		post, err := service.GetBySlug(context.Background(), "hidden-draft", true)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusDraft, post.Status)
	})
}

func TestPostService_Create(t *testing.T) {
	t.Run("unknown category is rejected and nothing is persisted", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewPostService(mockPosts, mockCategories, nil)
		post, err := service.Create(context.Background(), 1, PostInput{
			Title:      "A Post",
			Content:    "body",
			CategoryID: 99,
		})

		assert.Equal(t, errors.ErrUnknownCategory, err)
		assert.Nil(t, post)
		mockPosts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("derives slug, converts content and applies defaults", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(2)).Return(&model.Category{ID: 2, Name: "Tech"}, nil)

		var created *model.Post
		mockPosts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Post)
			created.ID = 10
		}).Return(nil)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10}, nil)

		service := NewPostService(mockPosts, mockCategories, nil)
		_, err := service.Create(context.Background(), 5, PostInput{
			Title:      "Hello World",
			Content:    "Hello\n\nWorld",
			CategoryID: 2,
		})

		assert.NoError(t, err)
		assert.Equal(t, "hello-world", created.Slug)
		assert.Equal(t, "<p>Hello</p><p>World</p>", created.Content)
		assert.Equal(t, model.StatusDraft, created.Status)
		assert.Equal(t, model.DefaultPostImage, created.Image)
		assert.Equal(t, uint(5), created.AuthorID)
	})

	t.Run("content with markup is stored verbatim", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(2)).Return(&model.Category{ID: 2}, nil)

		var created *model.Post
		mockPosts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Post)
		}).Return(nil)
		mockPosts.On("FindByID", mock.Anything, mock.AnythingOfType("uint")).Return(&model.Post{}, nil)

		service := NewPostService(mockPosts, mockCategories, nil)
		_, err := service.Create(context.Background(), 1, PostInput{
			Title:      "Rich",
			Content:    "<p>x</p>",
			CategoryID: 2,
		})

		assert.NoError(t, err)
		assert.Equal(t, "<p>x</p>", created.Content)
	})
}

func TestPostService_Update(t *testing.T) {
	existing := func() *model.Post {
		return &model.Post{
			ID:         10,
			Title:      "Old Title",
			Slug:       "old-title",
			Content:    "<p>old</p>",
			CategoryID: 2,
			Status:     model.StatusDraft,
			Image:      model.DefaultPostImage,
		}
	}

	t.Run("absent post is not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		_, err := service.Update(context.Background(), 10, PostUpdate{})

		assert.Equal(t, errors.ErrPostNotFound, err)
	})

	t.Run("only supplied fields change, slug follows title", func(t *testing.T) {
		post := existing()
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(post, nil)
		mockPosts.On("Update", mock.Anything, post).Return(nil)

		title := "New Title"
		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		_, err := service.Update(context.Background(), 10, PostUpdate{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "New Title", post.Title)
		assert.Equal(t, "new-title", post.Slug)
		assert.Equal(t, "<p>old</p>", post.Content)
		assert.Equal(t, model.StatusDraft, post.Status)
	})

	t.Run("content update is converted, slug untouched", func(t *testing.T) {
		post := existing()
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(post, nil)
		mockPosts.On("Update", mock.Anything, post).Return(nil)

		content := "Hello\n\nWorld"
		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		_, err := service.Update(context.Background(), 10, PostUpdate{Content: &content})

		assert.NoError(t, err)
		assert.Equal(t, "<p>Hello</p><p>World</p>", post.Content)
		assert.Equal(t, "old-title", post.Slug)
	})

	t.Run("unknown category on update is rejected", func(t *testing.T) {
		post := existing()
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(post, nil)
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		badCategory := uint(404)
		service := NewPostService(mockPosts, mockCategories, nil)
		_, err := service.Update(context.Background(), 10, PostUpdate{CategoryID: &badCategory})

		assert.Equal(t, errors.ErrUnknownCategory, err)
		mockPosts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("cascades comment deletion", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10, Slug: "old-title"}, nil)
		mockPosts.On("DeleteWithComments", mock.Anything, uint(10)).Return(nil)

		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		err := service.Delete(context.Background(), 10)

		assert.NoError(t, err)
		mockPosts.AssertExpectations(t)
	})

	t.Run("absent post is not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewPostService(mockPosts, new(MockCategoryRepository), nil)
		err := service.Delete(context.Background(), 10)

		assert.Equal(t, errors.ErrPostNotFound, err)
		mockPosts.AssertNotCalled(t, "DeleteWithComments", mock.Anything, mock.Anything)
	})
}
