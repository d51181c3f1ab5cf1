package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error (biasanya *fiber.Error) menjadi response JSON konsisten.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan pesan internal.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// FiberErrorHandler dipasang di fiber.Config.ErrorHandler.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
