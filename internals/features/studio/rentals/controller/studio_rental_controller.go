package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	database "danceflow_backend/internals/databases"
	"danceflow_backend/internals/features/studio/rentals/dto"
	"danceflow_backend/internals/features/studio/rentals/model"
	"danceflow_backend/internals/features/studio/rentals/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type StudioRentalController struct {
	svc      *service.StudioRentalService
	validate *validator.Validate
}

func NewStudioRentalController(svc *service.StudioRentalService) *StudioRentalController {
	return &StudioRentalController{svc: svc, validate: validator.New()}
}

func (h *StudioRentalController) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, service.ErrRentalNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Rental not found")
	case errors.Is(err, service.ErrSlotTaken):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "rental/slot-taken", err.Error(), nil)
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, database.ErrTxConflict):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "rental/invalid-status", "Rental cannot change to that status", nil)
	case errors.Is(err, service.ErrInvalidSlot), errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrRentalInPast):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotRentalOwner):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	applog.Error(op+" failed", err, "rental_id", c.Params("id"))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to "+op)
}

func (h *StudioRentalController) booker(c *fiber.Ctx) (service.Booker, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Booker{}, err
	}
	return service.Booker{UserID: userID, Role: helper.GetRole(c), StudioID: helper.GetStudioID(c)}, nil
}

// rentalID: error-nya diteruskan ke FiberErrorHandler.
func rentalID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid rental id")
	}
	return id, nil
}

// GET /api/public/rentals/availability?date=YYYY-MM-DD
func (h *StudioRentalController) Availability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required")
	}
	av, err := h.svc.Availability(c.UserContext(), c.Query("studio_id"), date)
	if err != nil {
		return h.fail(c, err, "load availability")
	}
	return helper.JsonOK(c, "Availability loaded", av)
}

// POST /api/u/rentals
func (h *StudioRentalController) Create(c *fiber.Ctx) error {
	b, err := h.booker(c)
	if err != nil {
		return err
	}
	var req dto.CreateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid rental data", err.Error())
	}
	row, err := h.svc.Create(c.UserContext(), b, req)
	if err != nil {
		return h.fail(c, err, "create rental")
	}
	return helper.JsonCreated(c, "Rental requested", dto.FromModel(row))
}

// GET /api/u/rentals
func (h *StudioRentalController) ListMine(c *fiber.Ctx) error {
	b, err := h.booker(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.svc.List(c.UserContext(), service.ListFilter{
		UserID: b.UserID, Status: c.Query("status"), Offset: p.Offset, Limit: p.Limit,
	})
	if err != nil {
		return h.fail(c, err, "list rentals")
	}
	return helper.JsonList(c, "Rentals loaded", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/rentals?status=&date=
func (h *StudioRentalController) List(c *fiber.Ctx) error {
	status := c.Query("status")
	switch model.RentalStatus(status) {
	case "", model.RentalStatusPending, model.RentalStatusConfirmed, model.RentalStatusCancelled:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.svc.List(c.UserContext(), service.ListFilter{
		StudioID: helper.GetStudioID(c), Status: status, Date: c.Query("date"), Offset: p.Offset, Limit: p.Limit,
	})
	if err != nil {
		return h.fail(c, err, "list rentals")
	}
	return helper.JsonList(c, "Rentals loaded", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/rentals/:id/confirm
func (h *StudioRentalController) Confirm(c *fiber.Ctx) error {
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	row, err := h.svc.Confirm(c.UserContext(), helper.GetStudioID(c), id)
	if err != nil {
		return h.fail(c, err, "confirm rental")
	}
	return helper.JsonUpdated(c, "Rental confirmed", dto.FromModel(row))
}

// POST /api/u/rentals/:id/cancel, /api/a/rentals/:id/cancel
func (h *StudioRentalController) Cancel(c *fiber.Ctx) error {
	b, err := h.booker(c)
	if err != nil {
		return err
	}
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	row, err := h.svc.Cancel(c.UserContext(), b, id)
	if err != nil {
		return h.fail(c, err, "cancel rental")
	}
	return helper.JsonUpdated(c, "Rental cancelled", dto.FromModel(row))
}
