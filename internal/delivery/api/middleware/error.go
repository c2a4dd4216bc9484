package middleware

import (
	"log/slog"
	"net/http"

	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"
	domainerrors "shopfront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is echo's HTTPErrorHandler. Every failure leaves as the same error envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// errorReply is what the client sees for a failed request.
type errorReply struct {
	status  int
	code    string
	message string
}

func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	reply, known := resolveError(err)
	if reply.status >= http.StatusInternalServerError {
		attrs := []any{
			slog.Any("error", err),
			slog.String("code", reply.code),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
		}
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
		if known {
			logger.Error("Request failed", attrs...)
		} else {
			logger.Error("Unhandled error", attrs...)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(reply.status)

		return
	}
	_ = response.Error(c, reply.status, reply.code, reply.message)
}

// resolveError turns err into a client reply. Unknown errors collapse into a generic 500
// so driver or carrier details never reach the client.
func resolveError(err error) (errorReply, bool) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return errorReply{status: appErr.HTTPCode(), code: appErr.ErrorCode(), message: appErr.Message()}, true
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}

		return errorReply{status: httpErr.Code, code: "HTTP_ERROR", message: message}, true
	}

	internal := domainerrors.ErrInternalError

	return errorReply{status: internal.HTTPCode(), code: internal.ErrorCode(), message: internal.Message()}, false
}
