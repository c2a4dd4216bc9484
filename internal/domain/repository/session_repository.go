package repository

import (
	"context"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository stores the single refresh session of each user.
type SessionRepository interface {
	// FindByUserIDForUpdate loads the user's session from the primary and locks the row
	// for the rest of the enclosing transaction.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Session, error)

	// Upsert inserts the session or overwrites hash, version and expiry of the existing row.
	Upsert(ctx context.Context, session *entity.Session) error

	// CompareAndSwap replaces hash and expiry and sets the version to next.Version only if the
	// stored version still equals expectedVersion. It returns false when another writer won.
	CompareAndSwap(ctx context.Context, expectedVersion int64, next *entity.Session) (bool, error)

	// Revoke clears the stored hash and bumps the version so that no outstanding refresh token
	// can be rotated any more. Revoking a user without a session is not an error.
	Revoke(ctx context.Context, userID uuid.UUID) error
}
