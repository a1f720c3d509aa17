package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
)

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

var (
	owner    = &model.User{ID: 1, Role: model.RoleUser}
	stranger = &model.User{ID: 2, Role: model.RoleUser}
	admin    = &model.User{ID: 3, Role: model.RoleAdmin}
)

func storedComment() *model.Comment {
	return &model.Comment{ID: 50, PostID: 10, UserID: owner.ID, Content: "original"}
}

func TestCommentService_Create(t *testing.T) {
	t.Run("absent post is not found", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewCommentService(mockComments, mockPosts)
		_, err := service.Create(context.Background(), 10, owner, "hello")

		assert.Equal(t, errors.ErrPostNotFound, err)
		mockComments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates a comment on an existing post", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockPosts := new(MockPostRepository)
		mockPosts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10}, nil)

		mockComments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Comment).ID = 50
		}).Return(nil)
		mockComments.On("FindByID", mock.Anything, uint(50)).Return(storedComment(), nil)

		service := NewCommentService(mockComments, mockPosts)
		comment, err := service.Create(context.Background(), 10, owner, "hello")

		assert.NoError(t, err)
		assert.Equal(t, uint(10), comment.PostID)
		assert.Equal(t, owner.ID, comment.UserID)
	})
}

func TestCommentService_Update(t *testing.T) {
	tests := []struct {
		name          string
		principal     *model.User
		comment       *model.Comment
		findErr       error
		expectedError error
	}{
		{
			name:          "absent comment is not found",
			principal:     owner,
			findErr:       gorm.ErrRecordNotFound,
			expectedError: errors.ErrCommentNotFound,
		},
		{
			name:          "comment on another post is rejected",
			principal:     owner,
			comment:       &model.Comment{ID: 50, PostID: 99, UserID: owner.ID},
			expectedError: errors.ErrCommentNotOnPost,
		},
		{
			name:          "stranger is forbidden",
			principal:     stranger,
			comment:       storedComment(),
			expectedError: errors.ErrCommentForbidden,
		},
		{
			name:      "owner may edit",
			principal: owner,
			comment:   storedComment(),
		},
		{
			name:      "admin may edit",
			principal: admin,
			comment:   storedComment(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			if tt.findErr != nil {
				mockComments.On("FindByID", mock.Anything, uint(50)).Return(nil, tt.findErr)
			} else {
				mockComments.On("FindByID", mock.Anything, uint(50)).Return(tt.comment, nil)
			}
			if tt.expectedError == nil {
				mockComments.On("Update", mock.Anything, tt.comment).Return(nil)
			}

			service := NewCommentService(mockComments, new(MockPostRepository))
			comment, err := service.Update(context.Background(), 10, 50, tt.principal, "edited")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, comment)
				mockComments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "edited", comment.Content)
			}
		})
	}
}

func TestCommentService_Delete(t *testing.T) {
	t.Run("stranger is forbidden and the comment survives", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, uint(50)).Return(storedComment(), nil)

		service := NewCommentService(mockComments, new(MockPostRepository))
		err := service.Delete(context.Background(), 10, 50, stranger)

		assert.Equal(t, errors.ErrCommentForbidden, err)
		mockComments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin may delete", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("FindByID", mock.Anything, uint(50)).Return(storedComment(), nil)
		mockComments.On("Delete", mock.Anything, uint(50)).Return(nil)

		service := NewCommentService(mockComments, new(MockPostRepository))
		assert.NoError(t, service.Delete(context.Background(), 10, 50, admin))
		mockComments.AssertExpectations(t)
	})
}
