package repository

import (
	"context"
	"time"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, refreshToken *models.RefreshToken) error
	FindByID(ctx context.Context, id string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// refreshTokenRepository is the GORM implementation of RefreshTokenRepository
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new instance of RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	return translateError(r.db.WithContext(ctx).Create(refreshToken).Error, "refresh token")
}

func (r *refreshTokenRepository) FindByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := r.db.WithContext(ctx).First(&refreshToken, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "refresh token")
	}
	return &refreshToken, nil
}

// Revoke marks a live token as revoked. It reports false when the token was
// already revoked or does not exist, so two concurrent refreshes cannot both win.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if result.Error != nil {
		return false, translateError(result.Error, "refresh token")
	}
	return result.RowsAffected == 1, nil
}

// RevokeAllForUser is used after a password change.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	return translateError(err, "refresh token")
}

// DeleteExpired removes rows that expired before the given time, revoked or not.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, translateError(result.Error, "refresh token")
	}
	return result.RowsAffected, nil
}
