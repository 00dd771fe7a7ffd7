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

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// List returns one page of a video's comments, newest first.
func (s *CommentService) List(ctx context.Context, videoID uuid.UUID, page dto.Page) (*Paginated[CommentView], error) {
	if err := videoExists(ctx, s.db, videoID); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := tx.Preload("Owner").
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	docs := make([]CommentView, 0, len(comments))
	for i := range comments {
		docs = append(docs, commentView(&comments[i]))
	}
	return paginated(docs, total, page.Page, page.Limit), nil
}

func (s *CommentService) Add(ctx context.Context, ownerID, videoID uuid.UUID, req *dto.ContentRequest) (*CommentView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	if err := videoExists(ctx, s.db, videoID); err != nil {
		return nil, err
	}

	comment := models.Comment{Content: content, VideoID: videoID, OwnerID: ownerID}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Owner").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	v := commentView(&comment)
	return &v, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, req *dto.ContentRequest) (*CommentView, error) {
	comment, err := s.find(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, comment.OwnerID, "update this comment"); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationError("Content is required")
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	comment.Content = content
	v := commentView(comment)
	return &v, nil
}

// Delete removes a comment and the likes pointing at it.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.find(ctx, commentID)
	if err != nil {
		return err
	}
	if err := Authorize(actorID, comment.OwnerID, "delete this comment"); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetComment, comment.ID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}

func (s *CommentService) find(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("Owner").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

func commentView(c *models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		VideoID:   c.VideoID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Owner:     publicUser(c.Owner, commenterView),
	}
}
