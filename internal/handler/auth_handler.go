package handler

import (
	"errors"
	"strings"

	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login answers {success, message, token, data}, with the token beside data
// rather than inside it.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return utils.ValidationErrorResponse(c, verr.Fields)
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Login successful",
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"data":       resp.Profil,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization header is required", nil)
	}

	if err := h.authService.Logout(c.UserContext(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Logout failed", err)
	}
	return utils.SuccessResponse(c, "Logged out successfully", nil)
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
