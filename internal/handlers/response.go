package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	if data == nil {
		data = dto.Empty{}
	}
	return c.Status(status).JSON(dto.ApiResponse{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

// respondError maps a service error kind to its status code. Server errors
// are logged, reported to Sentry and masked.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	}

	message := services.Message(err)
	if status >= fiber.StatusInternalServerError {
		logging.FromContext(c.UserContext()).Error("request failed",
			"op", c.Method()+" "+c.Route().Path,
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// actor returns the authenticated user of a protected route.
func actor(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := identity.UserID(c)
	if !ok {
		return uuid.Nil, services.Unauthenticated("Unauthorized request")
	}
	return id, nil
}

// idParam parses a path parameter as an id. A malformed id is a validation
// error.
func idParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, services.Invalid("Invalid " + label + " id")
	}
	return id, nil
}

func pageQuery(c *fiber.Ctx) dto.Page {
	return dto.ParsePage(c.Query("page"), c.Query("limit"))
}
