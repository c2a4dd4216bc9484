// Package response renders the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	domainerrors "shopfront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SuccessResponse is the envelope of every 2xx response.
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the envelope of every failed response. Its status code always mirrors the HTTP status.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"` // Machine-readable error code, e.g. "REVOKED_CREDENTIAL"
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, SuccessResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Code:       errorCode,
		Message:    message,
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", message)
}

// HandleAppError renders application errors; anything else is handed to echo's HTTPErrorHandler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			// Leave 5xx to the error handler so the cause is logged.
			return errors.WithStack(err)
		}

		return Render(c, appErr)
	}

	return errors.WithStack(err)
}

// Render writes an application error whatever its status.
func Render(c echo.Context, appErr domainerrors.AppError) error {
	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())
}
