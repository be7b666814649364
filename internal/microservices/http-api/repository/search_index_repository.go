package repository

import (
	"context"
	"time"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchIndexRepository maintains the media_search_index projection.
type SearchIndexRepository interface {
	Rebuild(ctx context.Context, mediaItemID string) error
	RebuildAll(ctx context.Context) (int, error)
	Get(ctx context.Context, mediaItemID string) (*models.MediaSearchIndex, error)
}

type searchIndexRepository struct {
	db *gorm.DB
}

func NewSearchIndexRepository(db *gorm.DB) SearchIndexRepository {
	return &searchIndexRepository{db: db}
}

func (r *searchIndexRepository) Rebuild(ctx context.Context, mediaItemID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return rebuildSearchIndex(tx, mediaItemID)
	})
	return translateError(err, "media item")
}

// RebuildAll walks every media item in batches and returns how many rows were refreshed.
func (r *searchIndexRepository) RebuildAll(ctx context.Context) (int, error) {
	const batchSize = 100
	var (
		ids   []string
		total int
	)
	db := r.db.WithContext(ctx)
	lastID := ""
	for {
		ids = ids[:0]
		if err := db.Model(&models.MediaItem{}).
			Where("id > ?", lastID).
			Order("id ASC").
			Limit(batchSize).
			Pluck("id", &ids).Error; err != nil {
			return total, translateError(err, "media item")
		}
		if len(ids) == 0 {
			return total, nil
		}
		for _, id := range ids {
			if err := r.Rebuild(ctx, id); err != nil {
				return total, err
			}
			total++
		}
		lastID = ids[len(ids)-1]
	}
}

func (r *searchIndexRepository) Get(ctx context.Context, mediaItemID string) (*models.MediaSearchIndex, error) {
	var row models.MediaSearchIndex
	if err := r.db.WithContext(ctx).First(&row, "media_item_id = ?", mediaItemID).Error; err != nil {
		return nil, translateError(err, "search index entry")
	}
	return &row, nil
}

// rebuildSearchIndex recomputes one projection row from the live tables.
// It must run on the caller's transaction handle.
func rebuildSearchIndex(tx *gorm.DB, mediaItemID string) error {
	var item models.MediaItem
	if err := tx.Preload("Creators.Creator").Preload("Tags.Tag").
		First(&item, "id = ?", mediaItemID).Error; err != nil {
		return err
	}

	stats, err := ratingStats(tx, mediaItemID)
	if err != nil {
		return err
	}

	var links int64
	if err := tx.Model(&models.Link{}).
		Where("from_media_id = ? OR to_media_id = ?", mediaItemID, mediaItemID).
		Count(&links).Error; err != nil {
		return err
	}

	creatorNames := datatypes.JSONSlice[string]{}
	seen := make(map[string]bool)
	for _, c := range item.Creators {
		if c.Creator == nil || seen[c.Creator.Name] {
			continue
		}
		seen[c.Creator.Name] = true
		creatorNames = append(creatorNames, c.Creator.Name)
	}
	tagNames := datatypes.JSONSlice[string]{}
	for _, t := range item.Tags {
		if t.Tag != nil {
			tagNames = append(tagNames, t.Tag.Name)
		}
	}

	row := models.MediaSearchIndex{
		MediaItemID:   item.ID,
		Title:         item.Title,
		Type:          item.Type,
		Year:          item.Year,
		CreatorNames:  creatorNames,
		TagNames:      tagNames,
		AverageRating: stats.Average,
		RatingsCount:  stats.Count,
		LinksCount:    links,
		UpdatedAt:     time.Now(),
	}
	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_item_id"}},
		UpdateAll: true,
	}).Create(&row).Error
}
