package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link is a directed, typed, weighted edge between two media items asserted by a user.
// Duplicates, reverse edges and self-loops are all allowed.
type Link struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FromMediaID string    `gorm:"type:uuid;not null;index" json:"fromMediaId"`
	ToMediaID   string    `gorm:"type:uuid;not null;index" json:"toMediaId"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"userId"`
	LinkType    LinkType  `gorm:"type:varchar(16);not null" json:"linkType"`
	Strength    float64   `gorm:"not null;check:chk_links_strength,strength >= 0 AND strength <= 1" json:"strength"`
	Note        *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	// Associations
	FromMedia *MediaItem `gorm:"foreignKey:FromMediaID;constraint:OnDelete:CASCADE;" json:"fromMedia,omitempty"`
	ToMedia   *MediaItem `gorm:"foreignKey:ToMediaID;constraint:OnDelete:CASCADE;" json:"toMedia,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (l *Link) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

func (Link) TableName() string {
	return "links"
}
