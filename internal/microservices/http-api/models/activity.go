package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity is an append-only feed entry. RefID points at the affected media item or link.
type Activity struct {
	ID        string            `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string            `gorm:"type:uuid;not null;index" json:"userId"`
	Kind      ActivityKind      `gorm:"type:varchar(8);not null;index" json:"kind"`
	RefID     string            `gorm:"size:64;not null;index" json:"refId"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"index" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (Activity) TableName() string {
	return "activities"
}
