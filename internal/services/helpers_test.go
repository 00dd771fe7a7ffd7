package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/testutil"
	"gorm.io/gorm"
)

var ctx = context.Background()

func newUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Full " + username,
		Avatar:       "https://media.test/" + username + ".png",
		PasswordHash: "x",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func newVideo(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Video {
	t.Helper()
	v := &models.Video{
		VideoFile:   "https://media.test/" + title + ".mp4",
		Thumbnail:   "https://media.test/" + title + ".jpg",
		OwnerID:     owner.ID,
		Title:       title,
		Description: "about " + title,
		Duration:    12.5,
		IsPublished: true,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	return v
}

func newComment(t *testing.T, db *gorm.DB, owner *models.User, video *models.Video, content string, at time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{Content: content, VideoID: video.ID, OwnerID: owner.ID}
	c.CreatedAt = at
	c.UpdatedAt = at
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func newRelay() *testutil.Relay {
	return &testutil.Relay{Duration: 42}
}

func wantKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("err = %v, want kind %v", err, kind)
	}
}

func count[T any](t *testing.T, db *gorm.DB, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
