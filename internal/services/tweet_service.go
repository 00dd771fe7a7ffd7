package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetService struct {
	db *gorm.DB
}

func NewTweetService(db *gorm.DB) *TweetService {
	return &TweetService{db: db}
}

func (s *TweetService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.ContentRequest) (*models.Tweet, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	tweet := models.Tweet{Content: content, OwnerID: ownerID}
	if err := s.db.WithContext(ctx).Create(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// ByUser lists a user's tweets, newest first.
func (s *TweetService) ByUser(ctx context.Context, userID uuid.UUID) ([]TweetView, error) {
	if err := userExists(ctx, s.db, userID, "User does not exist"); err != nil {
		return nil, err
	}

	var tweets []models.Tweet
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}

	out := make([]TweetView, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, TweetView{Tweet: t, Owner: publicUser(t.Owner, tweetOwner)})
	}
	return out, nil
}

func (s *TweetService) Update(ctx context.Context, actorID, tweetID uuid.UUID, req *dto.ContentRequest) (*models.Tweet, error) {
	tweet, err := s.find(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, tweet.OwnerID, "update this tweet"); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationError("Content is required")
	}

	if err := s.db.WithContext(ctx).Model(tweet).Update("content", content).Error; err != nil {
		return nil, err
	}
	tweet.Content = content
	return tweet, nil
}

// Delete removes a tweet and the likes pointing at it.
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID uuid.UUID) error {
	tweet, err := s.find(ctx, tweetID)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, tweet.OwnerID, "delete this tweet"); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetTweet, tweet.ID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(tweet).Error
	})
}

func (s *TweetService) find(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := s.db.WithContext(ctx).First(&tweet, "id = ?", tweetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Tweet not found")
		}
		return nil, err
	}
	return &tweet, nil
}
