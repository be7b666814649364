package repository

import (
	"context"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ActivityFilter narrows the feed. Zero values mean "no filter".
type ActivityFilter struct {
	UserID string
	Kind   models.ActivityKind
	Page   int
	Limit  int
}

// ActivityRepository reads the feed. Rows are appended by the rating, link and
// media repositories inside their own write transactions.
type ActivityRepository interface {
	List(ctx context.Context, filter ActivityFilter) ([]models.Activity, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// List returns the feed newest first with the acting user preloaded.
func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.UserID != "" {
			db = db.Where("user_id = ?", filter.UserID)
		}
		if filter.Kind != "" {
			db = db.Where("kind = ?", filter.Kind)
		}
		return db
	}

	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Activity{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "activity")
	}

	var items []models.Activity
	offset := (filter.Page - 1) * filter.Limit
	err := db.Scopes(scope).
		Preload("User", selectPublicUser).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, translateError(err, "activity")
	}
	return items, total, nil
}
