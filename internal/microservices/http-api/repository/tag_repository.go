package repository

import (
	"context"
	"strings"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context, query string, kind models.TagKind) ([]models.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return translateError(r.db.WithContext(ctx).Create(tag).Error, "tag")
}

// List returns tags ordered by name, optionally filtered by a name substring and kind.
func (r *tagRepository) List(ctx context.Context, query string, kind models.TagKind) ([]models.Tag, error) {
	db := r.db.WithContext(ctx)
	if q := strings.TrimSpace(query); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}

	var tags []models.Tag
	if err := db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, translateError(err, "tag")
	}
	return tags, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translateError(err, "tag")
	}
	return tags, nil
}
