package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TweetHandler struct {
	tweets *services.TweetService
}

func NewTweetHandler(tweets *services.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) Create(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	tweet, err := h.tweets.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ByUser(c *fiber.Ctx) error {
	userID, err := idParam(c, "userId", "user")
	if err != nil {
		return respondError(c, err)
	}
	tweets, err := h.tweets.ByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, tweets, "User tweets fetched successfully")
}

func (h *TweetHandler) Update(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	tweetID, err := idParam(c, "tweetId", "tweet")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, services.Invalid("Invalid request body"))
	}
	tweet, err := h.tweets.Update(c.UserContext(), userID, tweetID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	tweetID, err := idParam(c, "tweetId", "tweet")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tweets.Delete(c.UserContext(), userID, tweetID); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
