package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID  uuid.UUID `json:"-"`
	Type    string    `json:"type"`
	Version int64     `json:"ver,omitempty"` // Session version, refresh tokens only.
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token for the user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// GenerateRefreshToken creates a long-lived refresh token bound to a session version.
	GenerateRefreshToken(userID uuid.UUID, version int64) (token string, expiresAt time.Time, err error)

	// ValidateAccessToken verifies signature, expiry and type of an access token.
	// It fails with ErrExpiredCredential or ErrInvalidCredential.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies signature, expiry and type of a refresh token.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration and GetRefreshTokenDuration report the lifetimes tokens are minted with,
	// so credential cookies expire together with their tokens.
	GetAccessTokenDuration() time.Duration
	GetRefreshTokenDuration() time.Duration
}
