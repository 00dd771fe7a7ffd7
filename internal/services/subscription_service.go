package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Toggle subscribes subscriberID to channelID, or unsubscribes when already
// subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (ToggleResult, error) {
	if err := userExists(ctx, s.db, channelID, "Channel does not exist"); err != nil {
		return "", err
	}

	result, err := toggle(ctx, s.db,
		map[string]interface{}{"subscriber_id": subscriberID, "channel_id": channelID},
		&models.Subscription{SubscriberID: subscriberID, ChannelID: channelID},
	)
	if err != nil {
		return "", err
	}
	metrics.Toggles.WithLabelValues("subscription", string(result)).Inc()
	return result, nil
}

// Subscribers lists everyone subscribed to channelID.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID) ([]SubscriberEntry, error) {
	if err := userExists(ctx, s.db, channelID, "Channel does not exist"); err != nil {
		return nil, err
	}

	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	out := make([]SubscriberEntry, 0, len(subs))
	for i := range subs {
		out = append(out, SubscriberEntry{Subscriber: publicUser(subs[i].Subscriber, subscriberView)})
	}
	return out, nil
}

// SubscribedChannels lists the channels subscriberID is subscribed to.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*UserView, error) {
	if err := userExists(ctx, s.db, subscriberID, "Subscriber does not exist"); err != nil {
		return nil, err
	}

	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	out := make([]*UserView, 0, len(subs))
	for i := range subs {
		if subs[i].Channel == nil {
			continue
		}
		out = append(out, publicUser(subs[i].Channel, channelView))
	}
	return out, nil
}

func userExists(ctx context.Context, db *gorm.DB, id uuid.UUID, message string) error {
	return exists[models.User](ctx, db, id, message)
}
