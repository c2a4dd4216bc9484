// Package middleware contains the echo middleware of the API server.
package middleware

import (
	"log/slog"
	"strings"

	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/constants"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const contextKeyUser = "user"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Sessions usecase.SessionUsecase
	Logger   *slog.Logger
}

// AuthMiddleware gates routes on a valid access token.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: params.Sessions,
		logger:   params.Logger,
	}
}

// Authenticate reads the access token from the accessToken cookie or the Bearer header,
// loads its user and attaches it to the echo context and the request logger.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := accessToken(c)
		if token == "" {
			return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
		}

		ctx := c.Request().Context()
		user, err := m.sessions.Authenticate(ctx, token)
		if err != nil {
			// Unknown failures surface as 500 through the echo error handler.
			return response.HandleAppError(c, err)
		}

		SetUser(c, user)

		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", user.ID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// RequireAdmin must be used after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := GetUser(c)
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
		}
		if !user.IsAdmin() {
			return response.HandleAppError(c, domainerrors.ErrForbidden)
		}

		return next(c)
	}
}

func accessToken(c echo.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const bearerPrefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	return ""
}

// SetUser attaches the authenticated user to the echo context.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(contextKeyUser, user)
}

// GetUser returns the authenticated user set by Authenticate.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	user, ok := GetUser(c)
	if !ok {
		return uuid.Nil, false
	}

	return user.ID, true
}
