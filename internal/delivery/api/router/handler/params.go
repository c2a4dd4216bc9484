package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"shopfront/internal/delivery/api/middleware"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const tempUploadPattern = "shopfront-upload-*"

// pathID parses a uuid path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidInput.WithMessage("Invalid " + name)
	}

	return id, nil
}

// validateRequest runs the echo validator and reports failures as ErrValidationFailed
// carrying the failed fields.
func validateRequest(c echo.Context, req any) error {
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage(err.Error())
	}

	return nil
}

// currentUserID must only be called behind Authenticate.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	return id, nil
}

// ownerOrAdmin allows the resource owner and administrators.
func ownerOrAdmin(c echo.Context, ownerID uuid.UUID) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}
	if user.ID != ownerID && !user.IsAdmin() {
		return domainerrors.ErrForbidden.WithMessage("Access denied")
	}

	return nil
}

// saveFormFile copies an optional multipart file to a temp file and returns its path.
// The uploader removes the file after uploading; callers still defer removeTemp for the
// paths that never reach it.
func saveFormFile(c echo.Context, logger *slog.Logger, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}

		return "", domainerrors.ErrInvalidInput.WithMessage("Invalid " + field + " file")
	}

	return copyToTemp(header, logger)
}

func copyToTemp(header *multipart.FileHeader, logger *slog.Logger) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", errors.Wrap(err, "open form file")
	}
	defer src.Close()

	dst, err := os.CreateTemp("", tempUploadPattern+filepath.Ext(header.Filename))
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		removeTemp(dst.Name())

		return "", errors.Wrap(err, "copy form file")
	}

	logger.Debug("Received upload",
		slog.String("filename", header.Filename),
		slog.String("size", util.FormatBytes(header.Size)),
	)

	return dst.Name(), nil
}

func removeTemp(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
