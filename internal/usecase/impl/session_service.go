// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *sessionService) IssuePair(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	pair := &entity.TokenPair{AccessToken: accessToken}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions := repoFactory.NewSessionRepository()

		version := int64(1)
		current, err := sessions.FindByUserIDForUpdate(ctx, userID)
		switch {
		case err == nil:
			version = current.Version + 1
		case errors.Is(err, domainerrors.ErrNotFound):
		default:
			return err
		}

		refreshToken, expiresAt, err := srv.tokenService.GenerateRefreshToken(userID, version)
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token")
		}
		pair.RefreshToken = refreshToken

		return sessions.Upsert(ctx, &entity.Session{
			UserID:    userID,
			TokenHash: hashToken(refreshToken),
			Version:   version,
			ExpiresAt: expiresAt,
		})
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue credentials", slog.Any("error", err), slog.String("user_id", userID.String()))

		return nil, err
	}

	return pair, nil
}

func (srv *sessionService) Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID := claims.UserID

	pair := &entity.TokenPair{}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewUserRepository().FindByID(ctx, userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrInvalidCredential.WithDetails("refresh token subject no longer exists")
			}

			return err
		}

		sessions := repoFactory.NewSessionRepository()
		current, err := sessions.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrRevokedCredential
			}

			return err
		}

		if current.IsRevoked() || current.Version != claims.Version || current.TokenHash != hashToken(refreshToken) {
			srv.log(ctx).Warn("Refresh token reuse detected",
				slog.String("user_id", userID.String()),
				slog.Int64("token_version", claims.Version),
				slog.Int64("session_version", current.Version),
			)

			return domainerrors.ErrRevokedCredential
		}
		if current.IsExpired(srv.now()) {
			return domainerrors.ErrExpiredCredential
		}

		nextVersion := current.Version + 1
		nextRefresh, expiresAt, err := srv.tokenService.GenerateRefreshToken(userID, nextVersion)
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token")
		}

		swapped, err := sessions.CompareAndSwap(ctx, current.Version, &entity.Session{
			UserID:    userID,
			TokenHash: hashToken(nextRefresh),
			Version:   nextVersion,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			return err
		}
		if !swapped {
			return domainerrors.ErrRevokedCredential
		}
		pair.RefreshToken = nextRefresh

		return nil
	})
	if err != nil {
		return nil, err
	}

	pair.AccessToken, err = srv.tokenService.GenerateAccessToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("Credentials rotated", slog.String("user_id", userID.String()))

	return pair, nil
}

func (srv *sessionService) Revoke(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewSessionRepository().Revoke(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke session", slog.Any("error", err), slog.String("user_id", userID.String()))

		return err
	}

	return nil
}

func (srv *sessionService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredential.WithDetails("access token subject no longer exists")
		}

		return nil, err
	}

	return user, nil
}

// hashToken is the value stored in sessions.token_hash.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
