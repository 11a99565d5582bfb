package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model so ids can be handed out to clients before the
// row is visible to anyone else.
type Base struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
