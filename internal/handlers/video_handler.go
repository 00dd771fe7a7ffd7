package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videos *services.VideoService
	cfg    *config.Config
}

func NewVideoHandler(videos *services.VideoService, cfg *config.Config) *VideoHandler {
	return &VideoHandler{videos: videos, cfg: cfg}
}

func (h *VideoHandler) List(c *fiber.Ctx) error {
	q := dto.VideoListQuery{
		Page:     pageQuery(c),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, services.Invalid("Invalid user id"))
		}
		q.OwnerID = &id
	}

	page, err := h.videos.List(c.UserContext(), &q)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

func (h *VideoHandler) Publish(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	files := newUploads(h.cfg.UploadTempDir)
	defer files.cleanup()

	var req dto.PublishVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	if req.VideoFile, err = files.file(c, "videoFile"); err != nil {
		return respondError(c, err)
	}
	if req.Thumbnail, err = files.file(c, "thumbnail"); err != nil {
		return respondError(c, err)
	}

	video, err := h.videos.Publish(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, video, "Video has been published successfully")
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	userID, videoID, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}
	video, err := h.videos.Get(c.UserContext(), userID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, video, "Video has been fetched successfully")
}

func (h *VideoHandler) Update(c *fiber.Ctx) error {
	userID, videoID, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}
	files := newUploads(h.cfg.UploadTempDir)
	defer files.cleanup()

	var req dto.UpdateVideoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, services.Invalid("Invalid request body"))
		}
	}
	if req.Thumbnail, err = files.file(c, "thumbnail"); err != nil {
		return respondError(c, err)
	}

	video, err := h.videos.Update(c.UserContext(), userID, videoID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, video, "Video has been updated successfully")
}

func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	userID, videoID, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.videos.Delete(c.UserContext(), userID, videoID); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Video has been deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *fiber.Ctx) error {
	userID, videoID, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}
	video, err := h.videos.TogglePublish(c.UserContext(), userID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, video, "Video publish status has been toggled successfully")
}

func (h *VideoHandler) AddView(c *fiber.Ctx) error {
	userID, videoID, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}
	counted, err := h.videos.AddView(c.UserContext(), userID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	if !counted {
		return respond(c, fiber.StatusOK, nil, "Video views were not incremented because it is owned by the user")
	}
	return respond(c, fiber.StatusOK, nil, "Video views has been increased successfully")
}

func (h *VideoHandler) Recommended(c *fiber.Ctx) error {
	videos, err := h.videos.Recommended(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, videos, "Recommended videos has been fetched successfully")
}

func (h *VideoHandler) ByUsername(c *fiber.Ctx) error {
	videos, err := h.videos.ByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, videos, "User's videos has been fetched successfully")
}

func (h *VideoHandler) target(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := actor(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	videoID, err := idParam(c, "videoId", "video")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, videoID, nil
}
