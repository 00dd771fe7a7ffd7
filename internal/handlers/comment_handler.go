package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List treats a malformed video id like a missing video.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return respondError(c, services.Missing("Video not found"))
	}
	page, err := h.comments.List(c.UserContext(), videoID, pageQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, page, "Comments fetched successfully")
}

func (h *CommentHandler) Add(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videoID, err := idParam(c, "videoId", "video")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}

	comment, err := h.comments.Add(c.UserContext(), userID, videoID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := idParam(c, "commentId", "comment")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}

	comment, err := h.comments.Update(c.UserContext(), userID, commentID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := idParam(c, "commentId", "comment")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.comments.Delete(c.UserContext(), userID, commentID); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
