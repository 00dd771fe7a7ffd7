package models

import "github.com/google/uuid"

type Tweet struct {
	Base
	Content string    `gorm:"type:text;not null" json:"content"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`
}
