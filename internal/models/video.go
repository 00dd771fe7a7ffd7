package models

import "github.com/google/uuid"

type Video struct {
	Base
	VideoFile   string    `gorm:"type:text;not null" json:"videoFile"`
	Thumbnail   string    `gorm:"type:text;not null" json:"thumbnail"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Title       string    `gorm:"not null;size:255;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    float64   `gorm:"not null;default:0" json:"duration"`
	Views       int64     `gorm:"not null;default:0" json:"views"`
	IsPublished bool      `gorm:"not null;default:false;index" json:"isPublished"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
}
