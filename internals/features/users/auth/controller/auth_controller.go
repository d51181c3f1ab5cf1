package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/features/users/auth/dto"
	"danceflow_backend/internals/features/users/auth/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// POST /api/auth/verify-token
func (h *AuthController) VerifyToken(c *fiber.Ctx) error {
	var req dto.VerifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	res, err := h.svc.VerifyToken(c.UserContext(), req.Token)
	switch {
	case err == nil:
		return c.JSON(res)
	case errors.Is(err, service.ErrNoToken):
		return helper.JsonError(c, fiber.StatusBadRequest, "No token provided")
	case errors.Is(err, service.ErrInvalidToken):
		applog.Warn("id token rejected", "error", err.Error())
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
	case errors.Is(err, service.ErrNotConfigured):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Token verification is not available")
	}
	applog.Error("verify token failed", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify token")
}
