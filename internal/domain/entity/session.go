package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the single server-side record of a user's refresh credential.
// Each user owns at most one row; issuing a new credential replaces the hash
// and increments Version, which is also embedded in the refresh token.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string // SHA-256 of the raw refresh token, empty once revoked.
	Version   int64  // Monotonic counter compared against the token's "ver" claim.
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRevoked reports whether the session no longer accepts any refresh token.
func (s *Session) IsRevoked() bool {
	return s.TokenHash == ""
}

// IsExpired reports whether the session outlived its refresh window.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// TokenPair is an access/refresh credential pair handed to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
