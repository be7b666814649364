package repository

import (
	"context"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepository interface {
	Create(ctx context.Context, link *models.Link, activity *models.Activity) (*models.Link, error)
	ListTouching(ctx context.Context, mediaItemID string) ([]models.Link, error)
	Outgoing(ctx context.Context, mediaItemID string, limit int) ([]models.Link, error)
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// Create persists the link, appends activity with RefID set to the new link id,
// and refreshes the search index row of both endpoints in one transaction.
// The returned link has both endpoints and the author preloaded.
func (r *linkRepository) Create(ctx context.Context, link *models.Link, activity *models.Activity) (*models.Link, error) {
	var saved models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(link).Error; err != nil {
			return err
		}
		if activity != nil {
			activity.RefID = link.ID
			if err := tx.Omit(clause.Associations).Create(activity).Error; err != nil {
				return err
			}
		}
		if err := rebuildSearchIndex(tx, link.FromMediaID); err != nil {
			return err
		}
		if link.ToMediaID != link.FromMediaID {
			if err := rebuildSearchIndex(tx, link.ToMediaID); err != nil {
				return err
			}
		}
		return tx.Preload("FromMedia").
			Preload("ToMedia").
			Preload("User", selectPublicUser).
			First(&saved, "id = ?", link.ID).Error
	})
	if err != nil {
		return nil, translateError(err, "link")
	}
	return &saved, nil
}

// ListTouching returns links where the item is either endpoint, newest first.
func (r *linkRepository) ListTouching(ctx context.Context, mediaItemID string) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("from_media_id = ? OR to_media_id = ?", mediaItemID, mediaItemID).
		Preload("FromMedia").
		Preload("ToMedia").
		Preload("User", selectPublicUser).
		Order("created_at DESC").
		Order("id DESC").
		Find(&links).Error
	if err != nil {
		return nil, translateError(err, "link")
	}
	return links, nil
}

// Outgoing returns up to limit links leaving the item, strongest first and newest
// first among equal strengths, with the target item and its creators and tags preloaded.
func (r *linkRepository) Outgoing(ctx context.Context, mediaItemID string, limit int) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("from_media_id = ?", mediaItemID).
		Preload("ToMedia").
		Preload("ToMedia.Creators.Creator").
		Preload("ToMedia.Tags.Tag").
		Order("strength DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&links).Error
	if err != nil {
		return nil, translateError(err, "link")
	}
	return links, nil
}
