package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

type UserHandler struct {
	users *services.UserService
	cfg   *config.Config
}

func NewUserHandler(users *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{users: users, cfg: cfg}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	files := newUploads(h.cfg.UploadTempDir)
	defer files.cleanup()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	var err error
	if req.Avatar, err = files.file(c, "avatar"); err != nil {
		return respondError(c, err)
	}
	if req.CoverImage, err = files.file(c, "coverImage"); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Register(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}

	session, err := h.users.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookies(c, session)
	return respond(c, fiber.StatusOK, session, "User logged in successfully")
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.Logout(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	h.clearSessionCookies(c)
	return respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// RefreshToken accepts the refresh token from the body or the cookie.
func (h *UserHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, services.Invalid("Invalid request body"))
		}
	}
	token := req.RefreshToken
	if token == "" {
		token = c.Cookies(refreshCookie)
	}

	session, err := h.users.Refresh(c.UserContext(), token)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookies(c, session)
	return respond(c, fiber.StatusOK, session, "Access token refreshed")
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	if err := h.users.ChangePassword(c.UserContext(), userID, &req); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Password changed successfully")
}

func (h *UserHandler) CurrentUser(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	user, err := h.users.UpdateAccount(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	return h.replaceImage(c, "avatar", h.users.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *fiber.Ctx) error {
	return h.replaceImage(c, "coverImage", h.users.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) replaceImage(
	c *fiber.Ctx,
	field string,
	update func(ctx context.Context, userID uuid.UUID, up *dto.Upload) (*services.UserView, error),
	message string,
) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	files := newUploads(h.cfg.UploadTempDir)
	defer files.cleanup()

	up, err := files.file(c, field)
	if err != nil {
		return respondError(c, err)
	}
	user, err := update(c.UserContext(), userID, up)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, user, message)
}

func (h *UserHandler) ChannelProfile(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.users.ChannelProfile(c.UserContext(), userID, c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	history, err := h.users.WatchHistory(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, history, "Watch history fetched successfully")
}

func (h *UserHandler) setSessionCookies(c *fiber.Ctx, s *services.Session) {
	h.setCookie(c, accessCookie, s.AccessToken, time.Now().Add(h.cfg.JWTAccessExpiry))
	h.setCookie(c, refreshCookie, s.RefreshToken, time.Now().Add(h.cfg.JWTRefreshExpiry))
}

func (h *UserHandler) clearSessionCookies(c *fiber.Ctx) {
	h.setCookie(c, accessCookie, "", time.Unix(0, 0))
	h.setCookie(c, refreshCookie, "", time.Unix(0, 0))
}

func (h *UserHandler) setCookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
