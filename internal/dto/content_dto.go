package dto

import "github.com/google/uuid"

type PublishVideoRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	VideoFile   *Upload `json:"-" form:"-"`
	Thumbnail   *Upload `json:"-" form:"-"`
}

// UpdateVideoRequest applies only the fields that are set.
type UpdateVideoRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Thumbnail   *Upload `json:"-" form:"-"`
}

type VideoListQuery struct {
	Page
	Query    string
	SortBy   string
	SortType string
	OwnerID  *uuid.UUID
}

type ContentRequest struct {
	Content string `json:"content"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Thumbnail   *Upload `json:"-" form:"-"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
