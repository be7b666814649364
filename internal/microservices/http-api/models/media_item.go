package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaItem is a catalogued work. Identity is immutable, descriptive fields are not.
type MediaItem struct {
	ID          string                                `gorm:"primaryKey;type:uuid" json:"id"`
	Type        MediaType                             `gorm:"type:varchar(16);not null;index" json:"type"`
	Title       string                                `gorm:"not null;index" json:"title"`
	Subtitle    *string                               `json:"subtitle,omitempty"`
	Description *string                               `gorm:"type:text" json:"description,omitempty"`
	Year        *int                                  `json:"year,omitempty"`
	CoverURL    *string                               `json:"coverUrl,omitempty"`
	ExternalIDs datatypes.JSONType[map[string]string] `gorm:"column:external_ids;not null" json:"externalIds"`
	CreatedAt   time.Time                             `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`

	// Associations
	Creators []MediaItemCreator `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"creators,omitempty"`
	Tags     []MediaItemTag     `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"tags,omitempty"`
}

func (m *MediaItem) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (MediaItem) TableName() string {
	return "media_items"
}

// MediaItemCreator is the role-tagged join between media items and creators.
type MediaItemCreator struct {
	MediaItemID string      `gorm:"primaryKey;type:uuid" json:"mediaItemId"`
	CreatorID   string      `gorm:"primaryKey;type:uuid;index" json:"creatorId"`
	Role        CreatorRole `gorm:"primaryKey;type:varchar(16)" json:"role"`

	Creator *Creator `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE;" json:"creator,omitempty"`
}

func (MediaItemCreator) TableName() string {
	return "media_item_creators"
}

type MediaItemTag struct {
	MediaItemID string `gorm:"primaryKey;type:uuid" json:"mediaItemId"`
	TagID       string `gorm:"primaryKey;type:uuid;index" json:"tagId"`

	Tag *Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE;" json:"tag,omitempty"`
}

func (MediaItemTag) TableName() string {
	return "media_item_tags"
}
