package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const recommendedLimit = 5

// Sortable columns by their public name.
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

type VideoService struct {
	db    *gorm.DB
	relay media.Relay
}

func NewVideoService(db *gorm.DB, relay media.Relay) *VideoService {
	return &VideoService{db: db, relay: relay}
}

// List pages through published videos. Query matches title or description;
// an unknown sortBy falls back to createdAt, sortType defaults to desc.
func (s *VideoService) List(ctx context.Context, q *dto.VideoListQuery) (*Paginated[VideoView], error) {
	tx := s.db.WithContext(ctx).Model(&models.Video{}).Where("is_published = ?", true)
	if term := strings.ToLower(strings.TrimSpace(q.Query)); term != "" {
		like := "%" + term + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.OwnerID != nil {
		tx = tx.Where("owner_id = ?", *q.OwnerID)
	}

	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := videoSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := !strings.EqualFold(q.SortType, "asc")

	var videos []models.Video
	err := tx.Preload("Owner").
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order("id").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return paginated(videoViews(videos, ownerSummary), total, q.Page.Page, q.Limit), nil
}

func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, req *dto.PublishVideoRequest) (*VideoView, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, validationError("Title and description are required")
	}
	if req.VideoFile == nil {
		return nil, validationError("Video file is required")
	}
	if req.Thumbnail == nil {
		return nil, validationError("Thumbnail file is required")
	}

	file, err := upload(ctx, s.relay, req.VideoFile, "video")
	if err != nil {
		return nil, err
	}
	thumb, err := upload(ctx, s.relay, req.Thumbnail, "thumbnail")
	if err != nil {
		discardMedia(ctx, s.relay, file.URL)
		return nil, err
	}

	video := models.Video{
		VideoFile:   file.URL,
		Thumbnail:   thumb.URL,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Duration:    file.Duration,
		IsPublished: true,
	}
	if err := s.db.WithContext(ctx).Create(&video).Error; err != nil {
		discardMedia(ctx, s.relay, file.URL, thumb.URL)
		return nil, err
	}
	v := videoView(video, ownerSummary)
	return &v, nil
}

// Get returns a video for viewerID. Unpublished videos are visible only to
// their owner. A fetch by anyone else counts as a view.
func (s *VideoService) Get(ctx context.Context, viewerID, videoID uuid.UUID) (*VideoDetail, error) {
	video, err := s.find(ctx, videoID, true)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, notFound("Video not found")
	}
	if _, err := s.recordView(ctx, viewerID, video); err != nil {
		return nil, err
	}

	var counts struct {
		SubscribersCount int64
		IsSubscribed     bool
		LikesCount       int64
		IsLiked          bool
	}
	err = s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?) AS subscribers_count,
			EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = ? AND subscriber_id = ?) AS is_subscribed,
			(SELECT COUNT(*) FROM likes WHERE target_type = ? AND target_id = ?) AS likes_count,
			EXISTS (SELECT 1 FROM likes WHERE target_type = ? AND target_id = ? AND liked_by = ?) AS is_liked`,
		video.OwnerID, video.OwnerID, viewerID,
		models.LikeTargetVideo, video.ID,
		models.LikeTargetVideo, video.ID, viewerID,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &VideoDetail{
		VideoView:        videoView(*video, ownerSummary),
		SubscribersCount: counts.SubscribersCount,
		IsSubscribed:     counts.IsSubscribed,
		LikesCount:       counts.LikesCount,
		IsLiked:          counts.IsLiked,
	}, nil
}

// AddView counts a view by viewerID. Owners never count toward their own
// views, and unpublished videos do not exist for anyone else. Reports whether
// the view was counted.
func (s *VideoService) AddView(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error) {
	video, err := s.find(ctx, videoID, false)
	if err != nil {
		return false, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return false, notFound("Video not found")
	}
	return s.recordView(ctx, viewerID, video)
}

// recordView increments views by one and moves the video to the end of the
// viewer's watch history, unless the viewer owns the video.
func (s *VideoService) recordView(ctx context.Context, viewerID uuid.UUID, video *models.Video) (bool, error) {
	if viewerID == uuid.Nil || viewerID == video.OwnerID {
		return false, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Video{}).
			Where("id = ?", video.ID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return err
		}
		entry := models.WatchEntry{UserID: viewerID, VideoID: video.ID, WatchedAt: time.Now()}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
		}).Create(&entry).Error
	})
	if err != nil {
		return false, err
	}
	video.Views++
	metrics.VideoViews.Inc()
	return true, nil
}

// Update applies the set fields of req. A new thumbnail replaces the old one,
// which is then deleted from the media host.
func (s *VideoService) Update(ctx context.Context, actorID, videoID uuid.UUID, req *dto.UpdateVideoRequest) (*VideoView, error) {
	video, err := s.find(ctx, videoID, true)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, video.OwnerID, "update this video"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, validationError("Title cannot be empty")
		}
		updates["title"] = title
		video.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, validationError("Description cannot be empty")
		}
		updates["description"] = description
		video.Description = description
	}
	if len(updates) == 0 && req.Thumbnail == nil {
		return nil, validationError("Nothing to update")
	}

	previous := ""
	if req.Thumbnail != nil {
		thumb, err := upload(ctx, s.relay, req.Thumbnail, "thumbnail")
		if err != nil {
			return nil, err
		}
		previous = video.Thumbnail
		updates["thumbnail"] = thumb.URL
		video.Thumbnail = thumb.URL
	}

	if err := s.db.WithContext(ctx).Model(video).Updates(updates).Error; err != nil {
		if previous != "" {
			discardMedia(ctx, s.relay, video.Thumbnail)
		}
		return nil, err
	}
	discardMedia(ctx, s.relay, previous)

	v := videoView(*video, ownerSummary)
	return &v, nil
}

// Delete removes a video together with its likes, comments, comment likes,
// watch history entries and playlist memberships. Hosted media is deleted
// after the rows are gone; failures there are only logged.
func (s *VideoService) Delete(ctx context.Context, actorID, videoID uuid.UUID) error {
	video, err := s.find(ctx, videoID, false)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, video.OwnerID, "delete this video"); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", video.ID)
		if err := tx.Where("target_type = ? AND target_id IN (?)", models.LikeTargetComment, commentIDs).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetVideo, video.ID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.WatchEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM playlist_videos WHERE video_id = ?", video.ID).Error; err != nil {
			return err
		}
		return tx.Delete(video).Error
	})
	if err != nil {
		return err
	}

	discardMedia(ctx, s.relay, video.VideoFile, video.Thumbnail)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*VideoView, error) {
	video, err := s.find(ctx, videoID, true)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, video.OwnerID, "change the publish status of this video"); err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.db.WithContext(ctx).Model(video).Update("is_published", video.IsPublished).Error; err != nil {
		return nil, err
	}
	v := videoView(*video, ownerSummary)
	return &v, nil
}

// Recommended returns the most viewed published videos.
func (s *VideoService) Recommended(ctx context.Context) ([]VideoView, error) {
	var videos []models.Video
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Where("is_published = ?", true).
		Order("views DESC").
		Order("created_at DESC").
		Limit(recommendedLimit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videoViews(videos, ownerSummary), nil
}

// ByUsername lists the published videos of a channel, newest first.
func (s *VideoService) ByUsername(ctx context.Context, username string) ([]VideoView, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var owner models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User does not exist")
		}
		return nil, err
	}

	var videos []models.Video
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_published = ?", owner.ID, true).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	for i := range videos {
		videos[i].Owner = &owner
	}
	return videoViews(videos, ownerSummary), nil
}

func (s *VideoService) find(ctx context.Context, videoID uuid.UUID, withOwner bool) (*models.Video, error) {
	q := s.db.WithContext(ctx)
	if withOwner {
		q = q.Preload("Owner")
	}
	var video models.Video
	if err := q.First(&video, "id = ?", videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Video not found")
		}
		return nil, err
	}
	return &video, nil
}

func videoExists(ctx context.Context, db *gorm.DB, videoID uuid.UUID) error {
	return exists[models.Video](ctx, db, videoID, "Video not found")
}
