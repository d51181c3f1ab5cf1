package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danceflow_backend/internals/features/users/user/dto"
	"danceflow_backend/internals/features/users/user/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type UserController struct {
	svc      *service.UserService
	validate *validator.Validate
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{svc: svc, validate: validator.New()}
}

// GET /api/u/me
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	u, err := uc.svc.GetByID(c.UserContext(), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		applog.Error("get me failed", err, "user_id", userID)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if err := uc.svc.Touch(c.UserContext(), userID, time.Now()); err != nil {
		applog.Warn("touch last_active_at failed", "user_id", userID, "error", err.Error())
	}
	return helper.JsonOK(c, "User loaded", dto.FromModel(u))
}

// PATCH /api/a/users/:id/role
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := uc.validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "role must be one of admin, teacher, student")
	}

	u, err := uc.svc.UpdateRole(c.UserContext(), helper.GetStudioID(c), c.Params("id"), req.Role)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		applog.Error("update role failed", err, "user_id", c.Params("id"))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update role")
	}
	applog.Info("role updated", "user_id", u.ID, "role", u.Role, "by", helper.GetEmail(c))
	return helper.JsonUpdated(c, "Role updated", dto.FromModel(u))
}
