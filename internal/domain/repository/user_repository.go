// Package repository holds the persistence ports used by the use cases.
package repository

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository stores shop accounts. Username and email are unique, compared case-insensitively.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByLogin matches identifier against username or email. Reads hit the primary
	// so an account can log in right after registering.
	FindByLogin(ctx context.Context, identifier string) (*entity.User, error)

	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	Create(ctx context.Context, user *entity.User) error

	// Update writes every mutable field, including the admin flag and avatar URLs.
	Update(ctx context.Context, user *entity.User) error
}
