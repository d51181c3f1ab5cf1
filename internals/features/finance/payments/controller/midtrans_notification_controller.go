package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"danceflow_backend/internals/features/finance/payments/service"
	helper "danceflow_backend/internals/helpers"
)

// POST /api/payments/midtrans/notification
// Midtrans mengirim ulang selama response bukan 2xx, jadi penolakan bisnis tetap 200.
func (h *PaymentCallbackController) MidtransNotification(c *fiber.Ctx) error {
	raw := utils.CopyBytes(c.Body())

	res, err := h.svc.ProcessMidtransNotification(c.UserContext(), raw)
	if err != nil {
		var pe *service.PaymentError
		if errors.As(err, &pe) {
			return helper.JsonErrorCode(c, pe.Status, pe.Code, pe.Message, pe.Details)
		}
		return helper.JsonErrorCode(c, fiber.StatusInternalServerError, service.CodeTransactionFailed,
			"Failed to process notification", nil)
	}
	return helper.JsonOK(c, "Notification received", res)
}
