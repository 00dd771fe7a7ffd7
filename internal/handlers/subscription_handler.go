package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	channelID, err := idParam(c, "channelId", "channel")
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.subscriptions.Toggle(c.UserContext(), userID, channelID)
	if err != nil {
		return respondError(c, err)
	}
	if result == services.ToggleCreated {
		return respond(c, fiber.StatusOK, nil, "Subscribed successfully")
	}
	return respond(c, fiber.StatusOK, nil, "Unsubscribed successfully")
}

func (h *SubscriptionHandler) Subscribers(c *fiber.Ctx) error {
	channelID, err := idParam(c, "channelId", "channel")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.subscriptions.Subscribers(c.UserContext(), channelID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, list, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := idParam(c, "subscriberId", "subscriber")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.subscriptions.SubscribedChannels(c.UserContext(), subscriberID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, list, "Subscribed channels fetched successfully")
}
