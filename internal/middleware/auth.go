package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected verifies the access token from the Authorization header or
// the accessToken cookie.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:Authorization,cookie:accessToken",
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Unauthorized request")
		},
	})
}

// RequireUser runs after JWTProtected. It accepts only access tokens whose
// user still exists and records that user on the request.
func RequireUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return unauthorized(c, "Unauthorized request")
		}
		userID, err := services.SubjectFromClaims(token.Claims, services.TokenAccess)
		if err != nil {
			return unauthorized(c, "Invalid access token")
		}
		if _, err := users.FindByID(c.UserContext(), userID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return unauthorized(c, "Invalid access token")
			}
			return err
		}

		identity.SetUserID(c, userID)
		logger := logging.FromContext(c.UserContext()).With(slog.String("user_id", userID.String()))
		c.SetUserContext(logging.WithLogger(c.UserContext(), logger))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Status:  fiber.StatusUnauthorized,
		Message: message,
	})
}
