package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base: campos comunes de todas las entidades (PK uuid + timestamps)
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
