package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeTarget names the kind of entity a Like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like is a join record between a user and exactly one video, comment or tweet.
type Like struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LikedBy    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair,priority:1" json:"likedBy"`
	TargetType LikeTarget `gorm:"size:20;not null;uniqueIndex:idx_likes_pair,priority:2;index:idx_likes_target,priority:1" json:"targetType"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair,priority:3;index:idx_likes_target,priority:2" json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
