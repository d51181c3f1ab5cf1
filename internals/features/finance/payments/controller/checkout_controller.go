package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/features/finance/payments/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type CheckoutController struct {
	svc *service.CheckoutService
}

func NewCheckoutController(svc *service.CheckoutService) *CheckoutController {
	return &CheckoutController{svc: svc}
}

// POST /api/u/classes/:id/checkout
func (h *CheckoutController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	classID := c.Params("id")

	res, err := h.svc.Checkout(c.UserContext(), userID, classID)
	switch {
	case err == nil:
		return helper.JsonCreated(c, "Checkout created", res)
	case errors.Is(err, service.ErrGatewayDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Online payment is not available")
	case errors.Is(err, service.ErrCheckoutNoClass):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, service.CodeClassNotFound, "Class not found", nil)
	case errors.Is(err, service.ErrCheckoutNoUser):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, service.CodeUserNotFound, "User not found", nil)
	case errors.Is(err, service.ErrCheckoutFull):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, service.CodeClassFull, "Class is full", nil)
	case errors.Is(err, service.ErrCheckoutEnrolled):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, service.CodeAlreadyEnrolled, "Already enrolled in this class", nil)
	case errors.Is(err, service.ErrCheckoutFraction):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrCheckoutGatewayUp):
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment gateway rejected the transaction")
	}
	applog.Error("checkout failed", err, "user_id", userID, "class_id", classID)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create checkout")
}
