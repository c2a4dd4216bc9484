package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"shopfront/config"
	"shopfront/internal/delivery/api/response"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/constants"
	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/service"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Usecase usecase.UserUsecase
	Tokens  service.TokenService
	Config  *config.Config
	Logger  *slog.Logger
}

// UserHandler serves registration, credential and account endpoints.
type UserHandler struct {
	uc     usecase.UserUsecase
	tokens service.TokenService
	cfg    *config.Config
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		uc:     params.Usecase,
		tokens: params.Tokens,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type loginResponse struct {
	User         *UserView `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register handles the multipart registration form. The avatar file is required.
func (h *UserHandler) Register(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	avatarPath, err := saveFormFile(c, logger, "avatar")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer removeTemp(avatarPath)

	coverPath, err := saveFormFile(c, logger, "coverImage")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer removeTemp(coverPath)

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		FullName:   c.FormValue("fullName"),
		Email:      c.FormValue("email"),
		Username:   c.FormValue("username"),
		Password:   c.FormValue("password"),
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newUserView(user), "User registered successfully")
}

// Login accepts either a username or an email.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Username or email is required")
	}
	if err := validateRequest(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setCredentialCookies(c, out.Tokens)

	return response.Success(c, http.StatusOK, loginResponse{
		User:         newUserView(out.User),
		AccessToken:  out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
	}, "User logged in successfully")
}

func (h *UserHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	h.clearCredentialCookies(c)

	return response.Success(c, http.StatusOK, map[string]any{}, "User logged out")
}

// RefreshToken reads the refresh token from its cookie, falling back to the body.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(constants.CookieRefreshToken); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "Invalid refresh token input")
		}
		token = strings.TrimSpace(req.RefreshToken)
	}

	pair, err := h.uc.RefreshToken(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setCredentialCookies(c, pair)

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword revokes the session, so the credential cookies are cleared as well.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password input")
	}
	if err := validateRequest(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	h.clearCredentialCookies(c)

	return response.Success(c, http.StatusOK, map[string]any{}, "Password changed successfully")
}

func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.uc.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid account input")
	}
	if err := validateRequest(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.uc.UpdateAccount(c.Request().Context(), userID, usecase.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	avatarPath, err := saveFormFile(c, deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger), "avatar")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if avatarPath == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Avatar file is missing")
	}
	defer removeTemp(avatarPath)

	user, err := h.uc.UpdateAvatar(c.Request().Context(), userID, avatarPath)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Avatar image updated successfully")
}

// ToggleAdmin flips the role of the user in the path. Admin only.
func (h *UserHandler) ToggleAdmin(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.uc.ToggleAdmin(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "User role updated to "+user.Role.String())
}

func (h *UserHandler) setCredentialCookies(c echo.Context, pair *entity.TokenPair) {
	c.SetCookie(h.cookie(constants.CookieAccessToken, pair.AccessToken, int(h.tokens.GetAccessTokenDuration().Seconds())))
	c.SetCookie(h.cookie(constants.CookieRefreshToken, pair.RefreshToken, int(h.tokens.GetRefreshTokenDuration().Seconds())))
}

func (h *UserHandler) clearCredentialCookies(c echo.Context) {
	c.SetCookie(h.cookie(constants.CookieAccessToken, "", -1))
	c.SetCookie(h.cookie(constants.CookieRefreshToken, "", -1))
}

func (h *UserHandler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: sameSite(h.cfg.Cookie.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
