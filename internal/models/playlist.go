package models

import "github.com/google/uuid"

// Playlist holds a set of videos; membership lives in the playlist_videos join
// table whose composite primary key makes each video appear at most once.
type Playlist struct {
	Base
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Thumbnail   string    `gorm:"type:text;not null" json:"thumbnail"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Videos      []Video   `gorm:"many2many:playlist_videos" json:"videos,omitempty"`
}
