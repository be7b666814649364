package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Creator struct {
	ID        string                      `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string                      `gorm:"not null;index" json:"name"`
	Aliases   datatypes.JSONSlice[string] `gorm:"not null" json:"aliases"`
	Bio       *string                     `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

func (c *Creator) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Aliases == nil {
		c.Aliases = datatypes.JSONSlice[string]{}
	}
	return
}

func (Creator) TableName() string {
	return "creators"
}
