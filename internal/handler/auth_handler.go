package handler

import (
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes the identity carried by the bearer token. Sign-in
// itself happens at the identity provider.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, "User retrieved successfully", fiber.Map{
		"id":    c.Locals("user_id"),
		"email": c.Locals("email"),
		"role":  c.Locals("role"),
	})
}
