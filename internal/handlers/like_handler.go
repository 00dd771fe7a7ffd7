package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LikeHandler struct {
	likes *services.LikeService
}

func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

func (h *LikeHandler) ToggleVideoLike(c *fiber.Ctx) error {
	return h.toggle(c, "videoId", "video", h.likes.ToggleVideoLike)
}

func (h *LikeHandler) ToggleCommentLike(c *fiber.Ctx) error {
	return h.toggle(c, "commentId", "comment", h.likes.ToggleCommentLike)
}

func (h *LikeHandler) ToggleTweetLike(c *fiber.Ctx) error {
	return h.toggle(c, "tweetId", "tweet", h.likes.ToggleTweetLike)
}

func (h *LikeHandler) toggle(
	c *fiber.Ctx,
	param, label string,
	fn func(ctx context.Context, userID, targetID uuid.UUID) (services.ToggleResult, error),
) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	targetID, err := idParam(c, param, label)
	if err != nil {
		return respondError(c, err)
	}
	result, err := fn(c.UserContext(), userID, targetID)
	if err != nil {
		return respondError(c, err)
	}
	if result == services.ToggleCreated {
		return respond(c, fiber.StatusOK, nil, "Liked the "+label+" successfully")
	}
	return respond(c, fiber.StatusOK, nil, "Unliked the "+label+" successfully")
}

func (h *LikeHandler) LikedVideos(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videos, err := h.likes.LikedVideos(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, videos, "Liked videos fetched successfully")
}

func (h *LikeHandler) VideoLikes(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videoID, err := idParam(c, "videoId", "video")
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.likes.VideoLikes(c.UserContext(), userID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, summary, "Video likes fetched successfully")
}
