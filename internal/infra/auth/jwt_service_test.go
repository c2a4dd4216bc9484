package auth

import (
	"strings"
	"testing"
	"time"

	"shopfront/config"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{
			Access:  "test_access_secret_key_very_long_for_testing",
			Refresh: "test_refresh_secret_key_very_long_for_testing",
		},
		Auth: &config.AuthConfig{
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		},
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})

	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_RefreshTokenCarriesVersion(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	first, expiresAt, err := svc.GenerateRefreshToken(userID, 3)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	second, _, err := svc.GenerateRefreshToken(userID, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "tokens minted back to back must differ")

	claims, err := svc.ValidateRefreshToken(first)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, int64(3), claims.Version)
	assert.Equal(t, service.TokenTypeRefresh, claims.Type)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	refresh, _, err := svc.GenerateRefreshToken(userID, 1)
	require.NoError(t, err)

	// Signed with the refresh secret, so it fails signature verification as an access token.
	_, err = svc.ValidateAccessToken(refresh)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))

	access, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.ValidateAccessToken(token)

	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrExpiredCredential))
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "clearly-not-a-jwt-token-format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))
		})
	}
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	_, err = svc.ValidateAccessToken(tampered)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))
}

func TestJWTService_TokenDurations(t *testing.T) {
	svc := newTestJWTService(t)

	assert.Equal(t, time.Minute, svc.GetAccessTokenDuration())
	assert.Equal(t, time.Hour, svc.GetRefreshTokenDuration())

	defaults, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: "a", Refresh: "r"}})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, defaults.GetAccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, defaults.GetRefreshTokenDuration())
}
