package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CommentService handles comment operations.
type CommentService interface {
	ListForPost(ctx context.Context, postID uint) ([]model.Comment, error)
	Create(ctx context.Context, postID uint, author *model.User, content string) (*model.Comment, error)
	Update(ctx context.Context, postID, commentID uint, principal *model.User, content string) (*model.Comment, error)
	Delete(ctx context.Context, postID, commentID uint, principal *model.User) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
	}
}

// ListForPost returns the post's comments oldest-first with author names.
func (s *commentService) ListForPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// Create attaches a new comment to an existing post.
func (s *commentService) Create(ctx context.Context, postID uint, author *model.User, content string) (*model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("check post: %w", err)
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  author.ID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.comments.FindByID(ctx, comment.ID)
}

// Update edits a comment's content, allowed only for its author or an admin.
func (s *commentService) Update(ctx context.Context, postID, commentID uint, principal *model.User, content string) (*model.Comment, error) {
	comment, err := s.authorize(ctx, postID, commentID, principal)
	if err != nil {
		return nil, err
	}

	if content != "" {
		comment.Content = content
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.comments.FindByID(ctx, comment.ID)
}

// Delete removes a comment, allowed only for its author or an admin.
func (s *commentService) Delete(ctx context.Context, postID, commentID uint, principal *model.User) error {
	comment, err := s.authorize(ctx, postID, commentID, principal)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// authorize loads the comment and applies the existence, post-membership and
// owner-or-admin checks shared by every comment mutation.
func (s *commentService) authorize(ctx context.Context, postID, commentID uint, principal *model.User) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCommentNotFound
		}
		return nil, err
	}
	if comment.PostID != postID {
		return nil, errors.ErrCommentNotOnPost
	}
	if comment.UserID != principal.ID && !principal.Role.IsAdmin() {
		return nil, errors.ErrCommentForbidden
	}
	return comment, nil
}
