// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// AvatarPath and CoverPath point at temporary local files handed to the uploader.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// LoginInput carries either a username or an email as Identifier.
type LoginInput struct {
	Identifier string
	Password   string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// UpdateAccountInput defines the editable account details.
type UpdateAccountInput struct {
	FullName string
	Email    string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Tokens *entity.TokenPair
	User   *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarPath string) (*entity.User, error)
	ToggleAdmin(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
