package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/features/studio/attendance/dto"
	"danceflow_backend/internals/features/studio/attendance/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type AttendanceController struct {
	svc      *service.AttendanceService
	validate *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{svc: svc, validate: validator.New()}
}

func (h *AttendanceController) fail(c *fiber.Ctx, err error, op string) error {
	var ne *service.NotEnrolledError
	switch {
	case errors.As(err, &ne):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "attendance/not-enrolled",
			"Some students are not enrolled in this class", fiber.Map{"userIds": ne.UserIDs})
	case errors.Is(err, service.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	case errors.Is(err, service.ErrAttendanceNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Attendance not recorded for this date")
	case errors.Is(err, service.ErrInvalidDate):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotClassTeacher):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	applog.Error(op+" failed", err, "class_id", c.Params("id"), "date", c.Params("date"))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to "+op)
}

// PUT /api/a/classes/:id/attendance/:date
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid attendance data", err.Error())
	}

	actor := service.Actor{UserID: userID, Role: helper.GetRole(c), StudioID: helper.GetStudioID(c)}
	rec, enrolled, err := h.svc.Mark(c.UserContext(), actor, c.Params("id"), c.Params("date"), req.PresentStudents)
	if err != nil {
		return h.fail(c, err, "mark attendance")
	}
	return helper.JsonUpdated(c, "Attendance saved", dto.FromModel(rec, enrolled))
}

// GET /api/a/classes/:id/attendance/:date
func (h *AttendanceController) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), helper.GetStudioID(c), c.Params("id"), c.Params("date"))
	if err != nil {
		return h.fail(c, err, "get attendance")
	}
	return helper.JsonOK(c, "Attendance loaded", dto.FromModel(rec, nil))
}

// GET /api/a/classes/:id/attendance?page=&per_page=
func (h *AttendanceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 30, 366)
	rows, total, err := h.svc.List(c.UserContext(), helper.GetStudioID(c), c.Params("id"), p.Offset, p.Limit)
	if err != nil {
		return h.fail(c, err, "list attendance")
	}
	return helper.JsonList(c, "Attendance loaded", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/classes/:id/attendance/report
func (h *AttendanceController) Report(c *fiber.Ctx) error {
	rep, err := h.svc.ClassReport(c.UserContext(), helper.GetStudioID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "attendance report")
	}
	return helper.JsonOK(c, "Attendance report loaded", rep)
}

// GET /api/u/progress
func (h *AttendanceController) MyProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := h.svc.Progress(c.UserContext(), userID)
	if err != nil {
		applog.Error("load progress failed", err, "user_id", userID)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load progress")
	}
	return helper.JsonOK(c, "Progress loaded", rows)
}
