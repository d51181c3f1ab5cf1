package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/studio/classes/dto"
	"danceflow_backend/internals/features/studio/classes/model"
	"danceflow_backend/internals/features/studio/classes/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type ClassController struct {
	svc      *service.ClassService
	validate *validator.Validate
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{svc: svc, validate: validator.New()}
}

func (h *ClassController) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	case errors.Is(err, service.ErrCapacityBelowEnrolled):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrClassHasEnrollments):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrClassIDTaken):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMailerDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, helper.ErrFractionalCents):
		return helper.JsonError(c, fiber.StatusBadRequest, "price must have at most two decimal places")
	}
	applog.Error(op+" failed", err, "class_id", c.Params("id"))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to "+op)
}

/* =========================================================
   PUBLIC
========================================================= */

// GET /api/public/classes?style=&level=&teacher_id=&q=&page=&per_page=
func (h *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	f := dto.ListClassQuery{
		Style:     strings.TrimSpace(c.Query("style")),
		Level:     strings.ToLower(strings.TrimSpace(c.Query("level"))),
		TeacherID: strings.TrimSpace(c.Query("teacher_id")),
		StudioID:  strings.TrimSpace(c.Query("studio_id", helper.GetStudioID(c))),
		Q:         strings.TrimSpace(c.Query("q")),
		Offset:    p.Offset,
		Limit:     p.Limit,
	}
	if f.Style != "" && !model.IsValidStyle(f.Style) {
		return helper.JsonError(c, fiber.StatusBadRequest, "unknown dance style: "+f.Style)
	}
	if f.Level != "" && !model.IsValidLevel(f.Level) {
		return helper.JsonError(c, fiber.StatusBadRequest, "level must be one of beginner, intermediate, advanced")
	}
	rows, total, err := h.svc.List(c.UserContext(), f)
	if err != nil {
		return h.fail(c, err, "list classes")
	}
	return helper.JsonList(c, "Classes loaded", dto.FromModels(rows, false),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/public/classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	m, err := h.svc.Get(c.UserContext(), "", c.Params("id"))
	if err != nil {
		return h.fail(c, err, "get class")
	}
	return helper.JsonOK(c, "Class loaded", dto.FromModel(m, false))
}

/* =========================================================
   STAFF (teacher / admin)
========================================================= */

// GET /api/a/classes/:id - termasuk daftar siswa
func (h *ClassController) GetByIDStaff(c *fiber.Ctx) error {
	m, err := h.svc.Get(c.UserContext(), helper.GetStudioID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "get class")
	}
	return helper.JsonOK(c, "Class loaded", dto.FromModel(m, true))
}

// POST /api/a/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid class data", err.Error())
	}

	teacherID := ""
	if helper.GetRole(c) == constants.RoleTeacher {
		teacherID, _ = helper.GetUserIDFromToken(c)
	}
	m, err := h.svc.Create(c.UserContext(), helper.GetStudioID(c), teacherID, req)
	if err != nil {
		return h.fail(c, err, "create class")
	}
	return helper.JsonCreated(c, "Class created", dto.FromModel(m, true))
}

// PATCH /api/a/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid class data", err.Error())
	}
	m, err := h.svc.Update(c.UserContext(), helper.GetStudioID(c), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err, "update class")
	}
	return helper.JsonUpdated(c, "Class updated", dto.FromModel(m, true))
}

// DELETE /api/a/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), helper.GetStudioID(c), c.Params("id")); err != nil {
		return h.fail(c, err, "delete class")
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": c.Params("id")})
}

// POST /api/a/classes/:id/remind
func (h *ClassController) SendReminder(c *fiber.Ctx) error {
	var req dto.SendReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Date = strings.TrimSpace(req.Date)
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid reminder data", err.Error())
	}
	n, err := h.svc.SendReminders(c.UserContext(), helper.GetStudioID(c), c.Params("id"), req.Date, req.Time)
	if err != nil {
		return h.fail(c, err, "send reminders")
	}
	return helper.JsonOK(c, "Reminders queued", fiber.Map{"class_id": c.Params("id"), "queued": n})
}
