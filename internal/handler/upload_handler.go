package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
)

// MaxUploadSize is the upload limit in bytes.
const MaxUploadSize = 5 << 20 // 5 MB

const uploadField = "image"

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler stores uploaded images on disk.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new upload handler writing into uploadDir.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// Upload godoc
// @Summary Upload a single image (admin only)
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpg, jpeg, png, gif, webp; max 5 MB)"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile(uploadField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no image file uploaded",
			Code:  "NO_FILE",
		})
	}

	if file.Size > MaxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image exceeds the 5 MB limit",
			Code:  "FILE_TOO_LARGE",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] || !allowedImageMIMEs[file.Header.Get("Content-Type")] {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "only JPG, JPEG, PNG, GIF and WEBP images are allowed",
			Code:  "UNSUPPORTED_FILE_TYPE",
		})
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to read uploaded file",
			Code:  "UPLOAD_FAILED",
		})
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store uploaded file",
			Code:  "UPLOAD_FAILED",
		})
	}

	// Field name + timestamp + original extension keeps concurrent uploads
	// from colliding.
	name := fmt.Sprintf("%s-%d%s", uploadField, time.Now().UnixMilli(), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store uploaded file",
			Code:  "UPLOAD_FAILED",
		})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store uploaded file",
			Code:  "UPLOAD_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "image uploaded",
		"image":   "/uploads/" + name,
	})
}
