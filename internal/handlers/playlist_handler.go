package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PlaylistHandler struct {
	playlists *services.PlaylistService
	cfg       *config.Config
}

func NewPlaylistHandler(playlists *services.PlaylistService, cfg *config.Config) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, cfg: cfg}
}

func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	files := newUploads(h.cfg.UploadTempDir)
	defer files.cleanup()

	var req dto.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	if req.Thumbnail, err = files.file(c, "thumbnail"); err != nil {
		return respondError(c, err)
	}

	playlist, err := h.playlists.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) ByUser(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId", "user")
	if err != nil {
		return respondError(c, err)
	}
	playlists, err := h.playlists.ByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, playlists, "User playlists fetched successfully")
}

func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	playlistID, err := idParam(c, "playlistId", "playlist")
	if err != nil {
		return respondError(c, err)
	}
	playlist, err := h.playlists.Get(c.UserContext(), playlistID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	playlistID, err := idParam(c, "playlistId", "playlist")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	playlist, err := h.playlists.Update(c.UserContext(), userID, playlistID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	playlistID, err := idParam(c, "playlistId", "playlist")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.playlists.Delete(c.UserContext(), userID, playlistID); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videoID, err := idParam(c, "videoId", "video")
	if err != nil {
		return respondError(c, err)
	}
	playlistID, err := idParam(c, "playlistId", "playlist")
	if err != nil {
		return respondError(c, err)
	}
	playlist, err := h.playlists.AddVideo(c.UserContext(), userID, playlistID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videoID, err := idParam(c, "videoId", "video")
	if err != nil {
		return respondError(c, err)
	}
	playlistID, err := idParam(c, "playlistId", "playlist")
	if err != nil {
		return respondError(c, err)
	}
	playlist, err := h.playlists.RemoveVideo(c.UserContext(), userID, playlistID, videoID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
