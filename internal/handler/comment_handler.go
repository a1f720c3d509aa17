package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// CommentHandler handles comment endpoints nested under posts.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest represents a comment create or update payload.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// List godoc
// @Summary List a post's comments, oldest first
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListForPost(c.Request().Context(), postID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, comments)
}

// Create godoc
// @Summary Add a comment to a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body CommentRequest true "Comment content"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}

	comment, err := h.commentService.Create(c.Request().Context(), postID, principal, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit a comment (author or admin)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body CommentRequest true "New content"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}

	comment, err := h.commentService.Update(c.Request().Context(), postID, commentID, principal, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment (author or admin)
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		return err
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}

	if err := h.commentService.Delete(c.Request().Context(), postID, commentID, principal); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "comment deleted"})
}
