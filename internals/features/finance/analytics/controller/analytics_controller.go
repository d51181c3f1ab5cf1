package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"danceflow_backend/internals/features/finance/analytics/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type AnalyticsController struct {
	svc *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{svc: svc}
}

// GET /api/a/analytics/summary?from=&to= (RFC3339 atau YYYY-MM-DD)
func (h *AnalyticsController) Summary(c *fiber.Ctx) error {
	f := service.SummaryFilter{StudioID: helper.GetStudioID(c)}
	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		t, err := parseDay(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid "+key+" (use RFC3339 or YYYY-MM-DD)")
		}
		*dst = &t
	}

	out, err := h.svc.Summary(c.UserContext(), f)
	if err != nil {
		applog.Error("analytics summary failed", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return helper.JsonOK(c, "Analytics loaded", out)
}

func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
