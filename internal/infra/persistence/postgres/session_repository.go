package postgres

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// FindByUserIDForUpdate issues SELECT ... FOR UPDATE on the primary. Outside a transaction the
// lock is released as soon as the statement completes.
func (repo *sessionRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound.WithMessage("Session not found")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load session")
	}

	return toSessionDomain(&sessionM), nil
}

func (repo *sessionRepository) Upsert(ctx context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	sessionM := fromSessionDomain(session)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "version", "expires_at", "updated_at"}),
		}).
		Create(sessionM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert session")
	}

	return nil
}

func (repo *sessionRepository) CompareAndSwap(ctx context.Context, expectedVersion int64, next *entity.Session) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("user_id = ? AND version = ?", next.UserID, expectedVersion).
		Updates(map[string]any{
			"token_hash": next.TokenHash,
			"version":    next.Version,
			"expires_at": next.ExpiresAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to swap session")
	}

	return result.RowsAffected == 1, nil
}

func (repo *sessionRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"token_hash": "",
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke session")
	}

	return nil
}

func toSessionDomain(data *model.SessionModel) *entity.Session {
	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		Version:   data.Version,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		Version:   data.Version,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
