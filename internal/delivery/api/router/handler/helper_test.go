package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopfront/config"
	"shopfront/internal/delivery/api/middleware"
	"shopfront/internal/delivery/api/response"
	"shopfront/internal/delivery/api/validator"
	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:   &config.AuthConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour},
		Cookie: &config.CookieConfig{Secure: true, SameSite: "strict"},
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

// newJSONContext builds a context for a JSON request, optionally authenticated as user.
func newJSONContext(e *echo.Echo, method, target, body string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetUser(c, user)
	}

	return c, rec
}

func newUser(role entity.Role) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		FullName:     "Alice Doe",
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Role:         role,
	}
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, data any) response.SuccessResponse {
	t.Helper()

	var envelope struct {
		response.SuccessResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}

	return envelope.SuccessResponse
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}
