package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and timestamps shared by every stored entity.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate ensures UUID is set before creation
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model pointer for AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&WatchEntry{},
		&Comment{},
		&Tweet{},
		&Playlist{},
		&Like{},
		&Subscription{},
		&SystemLog{},
	}
}
