package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danceflow_backend/internals/features/finance/payments/dto"
	"danceflow_backend/internals/features/finance/payments/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

type PaymentAdminController struct {
	payments *service.PaymentQuery
	events   *service.GatewayEventRecorder
}

func NewPaymentAdminController(db *gorm.DB) *PaymentAdminController {
	return &PaymentAdminController{
		payments: service.NewPaymentQuery(db),
		events:   service.NewGatewayEventRecorder(db),
	}
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+" (use RFC3339)")
	}
	return &t, nil
}

// GET /api/a/payments?user_id=&class_id=&status=&method=&from=&to=&page=&per_page=
func (h *PaymentAdminController) ListPayments(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.payments.List(c.UserContext(), service.PaymentFilter{
		StudioID: helper.GetStudioID(c),
		UserID:   strings.TrimSpace(c.Query("user_id")),
		ClassID:  strings.TrimSpace(c.Query("class_id")),
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Method:   strings.TrimSpace(c.Query("method")),
		From:     from,
		To:       to,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		applog.Error("list payments failed", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list payments")
	}
	return helper.JsonList(c, "Payments loaded", dto.FromPaymentModels(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/payments/:id
func (h *PaymentAdminController) GetPayment(c *fiber.Ctx) error {
	m, err := h.payments.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
	}
	if err != nil {
		applog.Error("get payment failed", err, "payment_id", c.Params("id"))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load payment")
	}
	if sid := helper.GetStudioID(c); sid != "" && m.PaymentStudioID != nil && *m.PaymentStudioID != sid {
		return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
	}
	return helper.JsonOK(c, "Payment loaded", dto.FromPaymentModel(m))
}

// GET /api/a/payment-gateway-events?provider=&status=&external_id=&class_id=&start=&end=&page=&per_page=
func (h *PaymentAdminController) ListGatewayEvents(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		return err
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.events.List(c.UserContext(), service.GatewayEventFilter{
		Provider:   strings.TrimSpace(c.Query("provider")),
		Status:     strings.TrimSpace(c.Query("status")),
		ExternalID: strings.TrimSpace(c.Query("external_id")),
		ClassID:    strings.TrimSpace(c.Query("class_id")),
		Start:      start,
		End:        end,
		Offset:     p.Offset,
		Limit:      p.Limit,
	})
	if err != nil {
		applog.Error("list gateway events failed", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list gateway events")
	}
	out := make([]dto.PaymentGatewayEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromGatewayEventModel(&rows[i]))
	}
	return helper.JsonList(c, "Gateway events loaded", out,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
