package repository

import (
	"context"
	"strings"

	"vibelink/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CreatorRepository interface {
	Create(ctx context.Context, creator *models.Creator) error
	List(ctx context.Context, query string, limit int) ([]models.Creator, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Creator, error)
}

type creatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(ctx context.Context, creator *models.Creator) error {
	return translateError(r.db.WithContext(ctx).Create(creator).Error, "creator")
}

// List matches query against the creator name, case-insensitively.
func (r *creatorRepository) List(ctx context.Context, query string, limit int) ([]models.Creator, error) {
	db := r.db.WithContext(ctx)
	if q := strings.TrimSpace(query); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var creators []models.Creator
	if err := db.Order("name ASC").Limit(limit).Find(&creators).Error; err != nil {
		return nil, translateError(err, "creator")
	}
	return creators, nil
}

func (r *creatorRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Creator, error) {
	var creators []models.Creator
	if len(ids) == 0 {
		return creators, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&creators).Error; err != nil {
		return nil, translateError(err, "creator")
	}
	return creators, nil
}
