package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (ToggleResult, error) {
	if err := videoExists(ctx, s.db, videoID); err != nil {
		return "", err
	}
	return s.toggle(ctx, userID, models.LikeTargetVideo, videoID)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (ToggleResult, error) {
	if err := exists[models.Comment](ctx, s.db, commentID, "Comment not found"); err != nil {
		return "", err
	}
	return s.toggle(ctx, userID, models.LikeTargetComment, commentID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (ToggleResult, error) {
	if err := exists[models.Tweet](ctx, s.db, tweetID, "Tweet not found"); err != nil {
		return "", err
	}
	return s.toggle(ctx, userID, models.LikeTargetTweet, tweetID)
}

func (s *LikeService) toggle(ctx context.Context, userID uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (ToggleResult, error) {
	result, err := toggle(ctx, s.db,
		map[string]interface{}{"liked_by": userID, "target_type": target, "target_id": targetID},
		&models.Like{LikedBy: userID, TargetType: target, TargetID: targetID},
	)
	if err != nil {
		return "", err
	}
	metrics.Toggles.WithLabelValues(string(target)+"_like", string(result)).Inc()
	return result, nil
}

// LikedVideos lists the videos userID has liked, in the order they were liked.
func (s *LikeService) LikedVideos(ctx context.Context, userID uuid.UUID) ([]VideoView, error) {
	var videos []models.Video
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", models.LikeTargetVideo).
		Where("likes.liked_by = ?", userID).
		Order("likes.created_at ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videoViews(videos, likedVideoOwner), nil
}

// VideoLikes summarises the likes of videoID for userID.
func (s *LikeService) VideoLikes(ctx context.Context, userID, videoID uuid.UUID) (*LikeSummary, error) {
	if err := videoExists(ctx, s.db, videoID); err != nil {
		return nil, err
	}

	var summary LikeSummary
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_likes,
			COALESCE(SUM(CASE WHEN liked_by = ? THEN 1 ELSE 0 END), 0) > 0 AS is_liked_by_user
		FROM likes
		WHERE target_type = ? AND target_id = ?`,
		userID, models.LikeTargetVideo, videoID,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, message string) error {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("%s", message)
	}
	return nil
}
