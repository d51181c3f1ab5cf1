package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"danceflow_backend/internals/features/finance/payments/service"
	helper "danceflow_backend/internals/helpers"
)

type PaymentCallbackController struct {
	svc *service.PaymentService
}

func NewPaymentCallbackController(svc *service.PaymentService) *PaymentCallbackController {
	return &PaymentCallbackController{svc: svc}
}

// POST /api/payments/callback
func (h *PaymentCallbackController) Callback(c *fiber.Ctx) error {
	// body fiber dipakai ulang setelah handler selesai; email di antrean masih memegang string dari sini
	raw := utils.CopyBytes(c.Body())

	res, err := h.svc.ProcessCallback(c.UserContext(), raw)
	if err != nil {
		var pe *service.PaymentError
		if errors.As(err, &pe) {
			return helper.JsonErrorCode(c, pe.Status, pe.Code, pe.Message, pe.Details)
		}
		return helper.JsonErrorCode(c, fiber.StatusInternalServerError, service.CodeTransactionFailed,
			"Failed to process payment", nil)
	}

	msg := "Payment processed successfully"
	if res.Replayed {
		msg = "Payment already processed"
	}
	return helper.JsonOK(c, msg, res)
}
