package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	categoryHandler *handler.CategoryHandler,
	commentHandler *handler.CommentHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	protect := middleware.Protect(jwtService, users)
	optionalProtect := middleware.OptionalProtect(jwtService, users)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served directly from disk.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register-admin", authHandler.RegisterAdmin)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.PUT("/auth/reset-password/:token", authHandler.ResetPassword)
	api.GET("/auth/profile", authHandler.Profile, protect)

	// Post routes
	api.GET("/posts", postHandler.List, optionalProtect)
	api.POST("/posts", postHandler.Create, protect, middleware.RequireAdmin)
	api.GET("/posts/id/:id", postHandler.GetByID, protect, middleware.RequireAdmin)
	api.GET("/posts/:slug", postHandler.GetBySlug, optionalProtect)
	api.PUT("/posts/:id", postHandler.Update, protect, middleware.RequireAdmin)
	api.DELETE("/posts/:id", postHandler.Delete, protect, middleware.RequireAdmin)

	// Comment routes nested under posts
	api.GET("/posts/:postId/comments", commentHandler.List)
	api.POST("/posts/:postId/comments", commentHandler.Create, protect)
	api.PUT("/posts/:postId/comments/:commentId", commentHandler.Update, protect)
	api.DELETE("/posts/:postId/comments/:commentId", commentHandler.Delete, protect)

	// Category routes
	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create, protect, middleware.RequireAdmin)
	api.PUT("/categories/:id", categoryHandler.Update, protect, middleware.RequireAdmin)
	api.DELETE("/categories/:id", categoryHandler.Delete, protect, middleware.RequireAdmin)

	// Upload route
	api.POST("/upload", uploadHandler.Upload, protect, middleware.RequireAdmin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler normalizes every handler error, including unmatched routes,
// into the JSON error envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := errors.ErrorResponse{
		Error: "internal server error",
		Code:  "INTERNAL_ERROR",
	}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch m := he.Message.(type) {
		case errors.ErrorResponse:
			body = m
		case string:
			body = errors.ErrorResponse{Error: m, Code: codeForStatus(he.Code)}
		default:
			body = errors.ErrorResponse{Error: http.StatusText(he.Code), Code: codeForStatus(he.Code)}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
