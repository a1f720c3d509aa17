package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title      string       `json:"title" validate:"required"`
	Content    string       `json:"content" validate:"required"`
	CategoryID uint         `json:"category_id" validate:"required"`
	Status     model.Status `json:"status" validate:"omitempty,oneof=draft published"`
	Image      string       `json:"image"`
}

// UpdatePostRequest represents a partial post update; omitted fields are left
// unchanged.
type UpdatePostRequest struct {
	Title      *string       `json:"title"`
	Content    *string       `json:"content"`
	CategoryID *uint         `json:"category_id"`
	Status     *model.Status `json:"status" validate:"omitempty,oneof=draft published"`
	Image      *string       `json:"image"`
}

// List godoc
// @Summary List posts with pagination and title search
// @Tags posts
// @Produce json
// @Param pageNumber query int false "1-indexed page"
// @Param keyword query string false "Title substring filter"
// @Param status query string false "draft or published (admin only)"
// @Success 200 {object} service.PostPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("pageNumber"))
	keyword := c.QueryParam("keyword")
	status := model.Status(c.QueryParam("status"))

	principal, _ := middleware.PrincipalFrom(c)
	isAdmin := principal != nil && principal.Role.IsAdmin()

	result, err := h.postService.List(c.Request().Context(), keyword, status, page, isAdmin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// GetBySlug godoc
// @Summary Get a post by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{slug} [get]
func (h *PostHandler) GetBySlug(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)
	isAdmin := principal != nil && principal.Role.IsAdmin()

	post, err := h.postService.GetBySlug(c.Request().Context(), c.Param("slug"), isAdmin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, post)
}

// GetByID godoc
// @Summary Get a post by id regardless of status (admin editing)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/id/{id} [get]
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req CreatePostRequest
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

	post, err := h.postService.Create(c.Request().Context(), principal.ID, service.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		Image:      req.Image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), id, service.PostUpdate{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		Image:      req.Image,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post and its comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

// parseUintParam parses a numeric path parameter or fails with a 400 envelope.
func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(v), nil
}
