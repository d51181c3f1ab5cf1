package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/features/studio/enrollments/dto"
	"danceflow_backend/internals/features/studio/enrollments/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

const codeEnrollmentNotFound = "enrollment/not-found"

type EnrollmentController struct {
	svc *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{svc: svc}
}

func (h *EnrollmentController) cancel(c *fiber.Ctx, studioID, userID, classID string) error {
	e, err := h.svc.Unenroll(c.UserContext(), studioID, userID, classID)
	if errors.Is(err, service.ErrEnrollmentNotFound) {
		return helper.JsonErrorCode(c, fiber.StatusNotFound, codeEnrollmentNotFound, "No active enrollment for this class", nil)
	}
	if err != nil {
		applog.Error("unenroll failed", err, "user_id", userID, "class_id", classID)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel enrollment")
	}
	applog.Info("enrollment cancelled", "user_id", userID, "class_id", classID, "enrollment_id", e.EnrollmentID)
	return helper.JsonUpdated(c, "Enrollment cancelled", dto.FromModel(e))
}

// POST /api/u/enrollments/:classId/cancel
func (h *EnrollmentController) CancelMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return h.cancel(c, "", userID, c.Params("classId"))
}

// POST /api/a/classes/:id/students/:userId/cancel
func (h *EnrollmentController) CancelByStaff(c *fiber.Ctx) error {
	return h.cancel(c, helper.GetStudioID(c), c.Params("userId"), c.Params("id"))
}

// GET /api/u/enrollments?status=
func (h *EnrollmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.svc.List(c.UserContext(), service.ListFilter{
		UserID: userID,
		Status: strings.TrimSpace(c.Query("status")),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		applog.Error("list my enrollments failed", err, "user_id", userID)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load enrollments")
	}
	return helper.JsonList(c, "Enrollments loaded", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/classes/:id/enrollments?status=
func (h *EnrollmentController) ListByClass(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := h.svc.List(c.UserContext(), service.ListFilter{
		ClassID:  c.Params("id"),
		StudioID: helper.GetStudioID(c),
		Status:   strings.TrimSpace(c.Query("status")),
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		applog.Error("list class enrollments failed", err, "class_id", c.Params("id"))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load enrollments")
	}
	return helper.JsonList(c, "Enrollments loaded", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
