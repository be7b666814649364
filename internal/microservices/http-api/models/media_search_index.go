package models

import (
	"time"

	"gorm.io/datatypes"
)

// MediaSearchIndex is a listing projection derived from media_items, ratings and links.
// It is rebuilt from those rows on every write that touches them and is never read back
// as the source of a rating statistic.
type MediaSearchIndex struct {
	MediaItemID   string                      `gorm:"primaryKey;type:uuid" json:"mediaItemId"`
	Title         string                      `gorm:"not null;index" json:"title"`
	Type          MediaType                   `gorm:"type:varchar(16);not null;index" json:"type"`
	Year          *int                        `json:"year,omitempty"`
	CreatorNames  datatypes.JSONSlice[string] `gorm:"not null" json:"creatorNames"`
	TagNames      datatypes.JSONSlice[string] `gorm:"not null" json:"tagNames"`
	AverageRating *float64                    `gorm:"index" json:"averageRating"`
	RatingsCount  int64                       `gorm:"not null;default:0;index" json:"ratingsCount"`
	LinksCount    int64                       `gorm:"not null;default:0" json:"linksCount"`
	UpdatedAt     time.Time                   `json:"updatedAt"`

	MediaItem *MediaItem `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (MediaSearchIndex) TableName() string {
	return "media_search_index"
}
