package repository

import (
	"context"
	"strings"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort orders accepted by MediaRepository.List.
const (
	SortRecent  = "recent"
	SortTitle   = "title"
	SortRating  = "rating"
	SortPopular = "popular"
)

// MediaFilter narrows a catalog listing. Zero values mean "no filter".
type MediaFilter struct {
	Query   string
	Type    models.MediaType
	Tag     string
	Creator string // case-insensitive substring of a credited creator's name
	Sort    string
	Page    int
	Limit   int
}

type MediaRepository interface {
	Create(ctx context.Context, item *models.MediaItem, activity *models.Activity) error
	Update(ctx context.Context, item *models.MediaItem, activity *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.MediaItem, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter MediaFilter) ([]models.MediaItem, int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Create inserts the item with its creator and tag joins, records activity
// and seeds the search index row in one transaction.
func (r *mediaRepository) Create(ctx context.Context, item *models.MediaItem, activity *models.Activity) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if activity != nil {
			activity.RefID = item.ID
			if err := tx.Omit(clause.Associations).Create(activity).Error; err != nil {
				return err
			}
		}
		return rebuildSearchIndex(tx, item.ID)
	})
	return translateError(err, "media item")
}

// Update saves the descriptive columns of an existing item. Joins are left as they are.
func (r *mediaRepository) Update(ctx context.Context, item *models.MediaItem, activity *models.Activity) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.MediaItem{ID: item.ID}).
			Select("type", "title", "subtitle", "description", "year", "cover_url", "external_ids", "updated_at").
			Updates(item)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if activity != nil {
			activity.RefID = item.ID
			if err := tx.Omit(clause.Associations).Create(activity).Error; err != nil {
				return err
			}
		}
		return rebuildSearchIndex(tx, item.ID)
	})
	return translateError(err, "media item")
}

// GetByID loads the item with creators (and their roles) and tags.
func (r *mediaRepository) GetByID(ctx context.Context, id string) (*models.MediaItem, error) {
	var m models.MediaItem
	if err := r.db.WithContext(ctx).
		Preload("Creators.Creator").
		Preload("Tags.Tag").
		First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "media item")
	}
	return &m, nil
}

func (r *mediaRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MediaItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err, "media item")
	}
	return count > 0, nil
}

// List pages through the catalog. The query is split into tokens and each token
// must appear in the title, the subtitle or a creator name.
// Example: "dune herbert" -> (title LIKE '%dune%' OR ...) AND (title LIKE '%herbert%' OR ...)
func (r *mediaRepository) List(ctx context.Context, filter MediaFilter) ([]models.MediaItem, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		for _, t := range strings.Fields(strings.ToLower(filter.Query)) {
			p := "%" + t + "%"
			// COALESCE keeps NULL subtitles from dropping the whole row
			db = db.Where(`(LOWER(media_items.title) LIKE ? OR LOWER(COALESCE(media_items.subtitle, '')) LIKE ?
				OR EXISTS (SELECT 1 FROM media_item_creators mic JOIN creators c ON c.id = mic.creator_id
					WHERE mic.media_item_id = media_items.id AND LOWER(c.name) LIKE ?))`, p, p, p)
		}
		if filter.Type != "" {
			db = db.Where("media_items.type = ?", filter.Type)
		}
		if filter.Tag != "" {
			db = db.Where(`EXISTS (SELECT 1 FROM media_item_tags mit JOIN tags t ON t.id = mit.tag_id
				WHERE mit.media_item_id = media_items.id AND LOWER(t.name) = ?)`, strings.ToLower(filter.Tag))
		}
		if c := strings.TrimSpace(filter.Creator); c != "" {
			db = db.Where(`EXISTS (SELECT 1 FROM media_item_creators mic JOIN creators c ON c.id = mic.creator_id
				WHERE mic.media_item_id = media_items.id AND LOWER(c.name) LIKE ?)`, "%"+strings.ToLower(c)+"%")
		}
		return db
	}

	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.MediaItem{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "media item")
	}

	query := db.Model(&models.MediaItem{}).Scopes(scope).
		Joins("LEFT JOIN media_search_index msi ON msi.media_item_id = media_items.id").
		Preload("Creators.Creator").
		Preload("Tags.Tag")
	switch filter.Sort {
	case SortTitle:
		query = query.Order("media_items.title ASC")
	case SortRating:
		query = query.Order("msi.average_rating DESC NULLS LAST").Order("msi.ratings_count DESC")
	case SortPopular:
		query = query.Order("msi.ratings_count DESC").Order("msi.links_count DESC")
	default:
		query = query.Order("media_items.created_at DESC")
	}

	var list []models.MediaItem
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Order("media_items.id ASC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, translateError(err, "media item")
	}
	return list, total, nil
}
