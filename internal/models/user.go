package models

import (
	"time"

	"github.com/google/uuid"
)

// User is both an account and, seen from other users, a channel.
type User struct {
	Base
	Username         string  `gorm:"not null;size:100;uniqueIndex" json:"username"`
	Email            string  `gorm:"not null;size:255;uniqueIndex" json:"email"`
	FullName         string  `gorm:"not null;size:255;index" json:"fullName"`
	Avatar           string  `gorm:"type:text;not null" json:"avatar"`
	CoverImage       *string `gorm:"type:text" json:"coverImage"`
	PasswordHash     string  `gorm:"not null" json:"-"`
	RefreshTokenHash *string `gorm:"size:64;index" json:"-"`

	WatchHistory []WatchEntry `gorm:"foreignKey:UserID" json:"-"`
}

// WatchEntry is one element of a user's watch history. Entries are ordered by
// WatchedAt; re-watching a video moves its entry to the end.
type WatchEntry struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	VideoID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"videoId"`
	WatchedAt time.Time `gorm:"not null;index" json:"watchedAt"`
	Video     *Video    `gorm:"foreignKey:VideoID" json:"-"`
}

func (WatchEntry) TableName() string {
	return "watch_history_entries"
}
