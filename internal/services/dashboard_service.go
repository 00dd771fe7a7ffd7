package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats returns the channel totals of ownerID. TotalLikes counts the likes
// ownerID has given.
func (s *DashboardService) Stats(ctx context.Context, ownerID uuid.UUID) (*ChannelStats, error) {
	var stats ChannelStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?) AS total_subscribers,
			(SELECT COUNT(*) FROM videos WHERE owner_id = ?) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = ?) AS total_views,
			(SELECT COUNT(*) FROM likes WHERE liked_by = ?) AS total_likes`,
		ownerID, ownerID, ownerID, ownerID,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Videos lists every video of ownerID, newest first, with its like count.
func (s *DashboardService) Videos(ctx context.Context, ownerID uuid.UUID) ([]ChannelVideo, error) {
	out := []ChannelVideo{}
	err := s.db.WithContext(ctx).
		Model(&models.Video{}).
		Select(`videos.id, videos.title, videos.thumbnail, videos.views, videos.is_published,
			videos.created_at, videos.updated_at,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = ? AND likes.target_id = videos.id) AS likes`,
			models.LikeTargetVideo).
		Where("videos.owner_id = ?", ownerID).
		Order("videos.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
