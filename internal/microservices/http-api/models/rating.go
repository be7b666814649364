package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is unique per (user, media item); writes go through an upsert on that pair.
type Rating struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_media,priority:1" json:"userId"`
	MediaItemID string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_media,priority:2;index" json:"mediaItemId"`
	Score       int       `gorm:"not null;check:chk_ratings_score,score >= 1 AND score <= 10" json:"score"`
	ReviewText  *string   `gorm:"type:text" json:"reviewText,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"index" json:"updatedAt"`

	// Associations
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	MediaItem *MediaItem `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"mediaItem,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}
