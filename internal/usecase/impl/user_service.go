package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	sessions usecase.SessionUsecase
	hasher   service.PasswordHasher
	uploader service.FileUploader
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Sessions usecase.SessionUsecase
	Hasher   service.PasswordHasher
	Uploader service.FileUploader
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		sessions: params.Sessions,
		hasher:   params.Hasher,
		uploader: params.Uploader,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a user account. Identity fields are lowercased before the uniqueness check.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeIdentity(input.Email)
	input.Username = normalizeIdentity(input.Username)

	if input.FullName == "" || input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidInput.WithMessage("All fields are required")
	}

	exists, err := srv.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrUserAlreadyExists
	}

	if input.AvatarPath == "" {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Avatar file is required")
	}
	avatarURL, err := srv.uploader.Upload(ctx, input.AvatarPath)
	if err != nil {
		srv.log(ctx).Error("Avatar upload failed", slog.Any("error", err))

		return nil, domainerrors.ErrUploadFailed.WithMessage("Error while uploading avatar")
	}

	var coverURL string
	if input.CoverPath != "" {
		coverURL, err = srv.uploader.Upload(ctx, input.CoverPath)
		if err != nil {
			srv.log(ctx).Error("Cover image upload failed", slog.Any("error", err))

			return nil, domainerrors.ErrUploadFailed.WithMessage("Error while uploading cover image")
		}
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WithDetails(err.Error())
	}

	user := &entity.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		AvatarURL:    avatarURL,
		CoverURL:     coverURL,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

// Login never reveals whether the identifier or the password was wrong.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := normalizeIdentity(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Username or email and password are required")
	}

	user, err := srv.userRepo.FindByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredential
		}

		return nil, err
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("user_id", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredential
	}

	tokens, err := srv.sessions.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.LoginOutput{Tokens: tokens, User: user}, nil
}

func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	return srv.sessions.Revoke(ctx, userID)
}

func (srv *userService) RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	if refreshToken == "" {
		return nil, domainerrors.ErrUnauthenticated.WithMessage("Refresh token is required")
	}

	return srv.sessions.Rotate(ctx, refreshToken)
}

// ChangePassword also revokes the session so other devices must log in again.
func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input usecase.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return domainerrors.ErrInvalidInput.WithMessage("Old and new passwords are required")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid old password")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WithDetails(err.Error())
	}
	user.PasswordHash = hash

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return srv.sessions.Revoke(ctx, userID)
}

func (srv *userService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return srv.userRepo.FindByID(ctx, userID)
}

func (srv *userService) UpdateAccount(ctx context.Context, userID uuid.UUID, input usecase.UpdateAccountInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := normalizeIdentity(input.Email)
	if fullName == "" || email == "" {
		return nil, domainerrors.ErrInvalidInput.WithMessage("All fields are required")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FullName = fullName
	user.Email = email

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarPath string) (*entity.User, error) {
	if avatarPath == "" {
		return nil, domainerrors.ErrInvalidInput.WithMessage("Avatar file is missing")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := srv.uploader.Upload(ctx, avatarPath)
	if err != nil {
		srv.log(ctx).Error("Avatar upload failed", slog.Any("error", err))

		return nil, domainerrors.ErrUploadFailed.WithMessage("Error while uploading avatar")
	}
	user.AvatarURL = avatarURL

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *userService) ToggleAdmin(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = user.Role.Toggle()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User role changed", slog.String("user_id", userID.String()), slog.String("role", user.Role.String()))

	return user, nil
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
