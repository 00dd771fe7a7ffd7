package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistService struct {
	db    *gorm.DB
	relay media.Relay
}

func NewPlaylistService(db *gorm.DB, relay media.Relay) *PlaylistService {
	return &PlaylistService{db: db, relay: relay}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePlaylistRequest) (*models.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, validationError("Name and description are required")
	}
	if req.Thumbnail == nil {
		return nil, validationError("Thumbnail file is required")
	}

	thumb, err := upload(ctx, s.relay, req.Thumbnail, "thumbnail")
	if err != nil {
		return nil, err
	}
	playlist := models.Playlist{
		Name:        name,
		Description: description,
		Thumbnail:   thumb.URL,
		OwnerID:     ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&playlist).Error; err != nil {
		discardMedia(ctx, s.relay, thumb.URL)
		return nil, err
	}
	return &playlist, nil
}

// ByUser lists the playlists of userID without their videos.
func (s *PlaylistService) ByUser(ctx context.Context, userID uuid.UUID) ([]models.Playlist, error) {
	if err := userExists(ctx, s.db, userID, "User does not exist"); err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// Get returns a playlist with its videos.
func (s *PlaylistService) Get(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.WithContext(ctx).Preload("Videos").First(&playlist, "id = ?", playlistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Playlist not found")
		}
		return nil, err
	}
	if playlist.Videos == nil {
		playlist.Videos = []models.Video{}
	}
	return &playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID uuid.UUID, req *dto.UpdatePlaylistRequest) (*models.Playlist, error) {
	playlist, err := s.find(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, playlist.OwnerID, "update this playlist"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("Name cannot be empty")
		}
		updates["name"] = name
		playlist.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, validationError("Description cannot be empty")
		}
		updates["description"] = description
		playlist.Description = description
	}
	if len(updates) == 0 {
		return nil, validationError("Nothing to update")
	}

	if err := s.db.WithContext(ctx).Model(playlist).Updates(updates).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes a playlist and its memberships, then its thumbnail.
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID uuid.UUID) error {
	playlist, err := s.find(ctx, playlistID)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, playlist.OwnerID, "delete this playlist"); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM playlist_videos WHERE playlist_id = ?", playlist.ID).Error; err != nil {
			return err
		}
		return tx.Delete(playlist).Error
	})
	if err != nil {
		return err
	}

	discardMedia(ctx, s.relay, playlist.Thumbnail)
	return nil
}

// AddVideo puts videoID in the playlist. Adding a member again is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.find(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := videoExists(ctx, s.db, videoID); err != nil {
		return nil, err
	}
	if err := Authorize(actorID, playlist.OwnerID, "add videos to this playlist"); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Exec(
		"INSERT INTO playlist_videos (playlist_id, video_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		playlist.ID, videoID,
	).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, playlist.ID)
}

// RemoveVideo takes videoID out of the playlist. NotFound when it is not a
// member.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.find(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, playlist.OwnerID, "remove videos from this playlist"); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Exec(
		"DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?",
		playlist.ID, videoID,
	)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Video is not in this playlist")
	}
	return s.Get(ctx, playlist.ID)
}

func (s *PlaylistService) find(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.WithContext(ctx).First(&playlist, "id = ?", playlistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Playlist not found")
		}
		return nil, err
	}
	return &playlist, nil
}
