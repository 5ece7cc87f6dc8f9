package middleware

import (
	"context"
	"errors"
	"strings"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Keys under which the authenticated identity is stored in fiber locals.
const (
	LocalProfilID = "id_profil"
	LocalUsername = "username"
	LocalRoleID   = "id_role"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// AuthMiddleware requires a valid, unrevoked bearer token. It is a no-op
// when AUTH_REQUIRED is false.
func AuthMiddleware(auth Authenticator, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.AuthRequired {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization header is required", nil)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid authorization header format", nil)
		}

		claims, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error(), nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to authenticate", err)
		}

		c.Locals(LocalProfilID, claims.ProfilID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRoleID, claims.RoleID)

		return c.Next()
	}
}
