package repository

import (
	"context"
	"time"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingStats is the aggregate over every rating of one media item.
// Average is nil when Count is zero.
type RatingStats struct {
	Average *float64
	Count   int64
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating, activity *models.Activity) (*models.Rating, error)
	Delete(ctx context.Context, userID, mediaItemID string) error
	GetByUserAndMedia(ctx context.Context, userID, mediaItemID string) (*models.Rating, error)
	ListByMedia(ctx context.Context, mediaItemID string, page, pageSize int) ([]models.Rating, int64, error)
	Recent(ctx context.Context, mediaItemID string, limit int) ([]models.Rating, error)
	Stats(ctx context.Context, mediaItemID string) (RatingStats, error)
	TopRatedByUser(ctx context.Context, userID string, minScore, limit int) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert creates or overwrites the rating for (UserID, MediaItemID) in one statement,
// appends activity and refreshes the item's search index row, all in one transaction.
// A nil ReviewText leaves an existing review untouched.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating, activity *models.Activity) (*models.Rating, error) {
	var saved models.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		rating.CreatedAt = now
		rating.UpdatedAt = now

		updateCols := []string{"score", "updated_at"}
		if rating.ReviewText != nil {
			updateCols = append(updateCols, "review_text")
		}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_item_id"}},
			DoUpdates: clause.AssignmentColumns(updateCols),
		}).Create(rating).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND media_item_id = ?", rating.UserID, rating.MediaItemID).
			First(&saved).Error; err != nil {
			return err
		}

		if activity != nil {
			if err := tx.Omit(clause.Associations).Create(activity).Error; err != nil {
				return err
			}
		}
		return rebuildSearchIndex(tx, rating.MediaItemID)
	})
	if err != nil {
		return nil, translateError(err, "rating")
	}
	return &saved, nil
}

// Delete a rating by user and media item
func (r *ratingRepository) Delete(ctx context.Context, userID, mediaItemID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND media_item_id = ?", userID, mediaItemID).Delete(&models.Rating{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return rebuildSearchIndex(tx, mediaItemID)
	})
	return translateError(err, "rating")
}

// GetByUserAndMedia retrieves a user's rating for a specific media item
func (r *ratingRepository) GetByUserAndMedia(ctx context.Context, userID, mediaItemID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND media_item_id = ?", userID, mediaItemID).
		First(&rating).Error
	if err != nil {
		return nil, translateError(err, "rating")
	}
	return &rating, nil
}

// ListByMedia retrieves ratings for a media item, newest first, with pagination
func (r *ratingRepository) ListByMedia(ctx context.Context, mediaItemID string, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Rating{}).Where("media_item_id = ?", mediaItemID).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "rating")
	}

	offset := (page - 1) * pageSize
	err := db.Where("media_item_id = ?", mediaItemID).
		Preload("User", selectPublicUser).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, translateError(err, "rating")
	}
	return ratings, total, nil
}

// Recent returns the latest ratings of a media item by creation time.
func (r *ratingRepository) Recent(ctx context.Context, mediaItemID string, limit int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("media_item_id = ?", mediaItemID).
		Preload("User", selectPublicUser).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, translateError(err, "rating")
	}
	return ratings, nil
}

// Stats computes count and arithmetic mean from the ratings table itself.
func (r *ratingRepository) Stats(ctx context.Context, mediaItemID string) (RatingStats, error) {
	stats, err := ratingStats(r.db.WithContext(ctx), mediaItemID)
	if err != nil {
		return RatingStats{}, translateError(err, "rating")
	}
	return stats, nil
}

// TopRatedByUser returns the user's ratings with score >= minScore, most recently
// updated first, with the rated media item preloaded.
func (r *ratingRepository) TopRatedByUser(ctx context.Context, userID string, minScore, limit int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND score >= ?", userID, minScore).
		Preload("MediaItem").
		Order("updated_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, translateError(err, "rating")
	}
	return ratings, nil
}

func ratingStats(db *gorm.DB, mediaItemID string) (RatingStats, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := db.Model(&models.Rating{}).
		Select("COUNT(*) AS count, AVG(score) AS average").
		Where("media_item_id = ?", mediaItemID).
		Scan(&row).Error
	if err != nil {
		return RatingStats{}, err
	}
	return RatingStats{Average: row.Average, Count: row.Count}, nil
}

// selectPublicUser limits preloaded users to non-sensitive columns.
func selectPublicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "avatar_url")
}
