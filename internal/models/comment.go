package models

import "github.com/google/uuid"

type Comment struct {
	Base
	Content string    `gorm:"type:text;not null" json:"content"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index" json:"videoId"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`
}
