package usecase

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase issues, rotates and revokes credential pairs against the session store.
type SessionUsecase interface {
	// IssuePair mints a new pair and replaces the user's session, invalidating any previous refresh token.
	IssuePair(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error)

	// Rotate exchanges a valid refresh token for a new pair. A token whose hash or version
	// no longer matches the stored session fails with ErrRevokedCredential.
	Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// Revoke clears the user's session (logout).
	Revoke(ctx context.Context, userID uuid.UUID) error

	// Authenticate verifies an access token and loads its user.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}
