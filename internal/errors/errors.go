package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidAdminKey is returned when the admin registration secret does not match.
	ErrInvalidAdminKey = errors.New("invalid admin secret key")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidResetToken is returned when a password reset token is unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrMailDelivery is returned when the reset email could not be sent.
	ErrMailDelivery = errors.New("failed to send email")

	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when a category with the same name already exists.
	ErrCategoryExists = errors.New("a category with this name already exists")
	// ErrUnknownCategory is returned when a post references a category that does not exist.
	ErrUnknownCategory = errors.New("category does not exist")

	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrSlugTaken is returned when a post with the same slug already exists.
	ErrSlugTaken = errors.New("a post with this slug already exists")

	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrCommentNotOnPost is returned when a comment does not belong to the post in the URL.
	ErrCommentNotOnPost = errors.New("comment does not belong to this post")
	// ErrCommentForbidden is returned when the caller is neither the comment author nor an admin.
	ErrCommentForbidden = errors.New("not authorized to modify this comment")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidAdminKey:
		return NewHTTPError(http.StatusForbidden, err.Error(), "INVALID_ADMIN_KEY")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrInvalidResetToken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	case ErrMailDelivery:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "MAIL_DELIVERY_FAILED")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrCategoryExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	case ErrUnknownCategory:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CATEGORY")
	case ErrPostNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case ErrSlugTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case ErrCommentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case ErrCommentNotOnPost:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_POST_MISMATCH")
	case ErrCommentForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "COMMENT_FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
