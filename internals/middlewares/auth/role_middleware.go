package auth

import (
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	helper "danceflow_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validasi role + custom error message
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// RequireCapability: guard berbasis capability (constants.Capabilities).
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !constants.HasCapability(role, capability) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.CapabilityError(capability))
		}
		return c.Next()
	}
}
