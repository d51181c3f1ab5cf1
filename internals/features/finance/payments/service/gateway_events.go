package service

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danceflow_backend/internals/features/finance/payments/model"
	helper "danceflow_backend/internals/helpers"
)

// GatewayEventRecorder mencatat setiap pengiriman callback ke payment_gateway_events.
// Pengiriman ulang dengan external id yang sama menaikkan try_count.
type GatewayEventRecorder struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewGatewayEventRecorder(db *gorm.DB) *GatewayEventRecorder {
	return &GatewayEventRecorder{DB: db, now: time.Now}
}

type GatewayEventInput struct {
	Provider   model.PaymentGatewayProvider
	ExternalID string
	ClassID    string
	UserID     string
	Payload    map[string]any
	Signature  string
	// kosong = processing
	Status model.GatewayEventStatus
}

func (r *GatewayEventRecorder) Record(ctx context.Context, in GatewayEventInput) (*model.PaymentGatewayEventModel, error) {
	payload, err := maskedJSON(in.Payload)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = model.GatewayEventStatusProcessing
	}
	now := r.now()
	row := model.PaymentGatewayEventModel{
		GatewayEventID:         uuid.New(),
		GatewayEventProvider:   in.Provider,
		GatewayEventExternalID: in.ExternalID,
		GatewayEventClassID:    optional(in.ClassID),
		GatewayEventUserID:     optional(in.UserID),
		GatewayEventPayload:    payload,
		GatewayEventSignature:  optional(in.Signature),
		GatewayEventStatus:     status,
		GatewayEventTryCount:   1,
		GatewayEventReceivedAt: now,
	}

	db := r.DB.WithContext(ctx)
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "gateway_event_provider"}, {Name: "gateway_event_external_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"gateway_event_try_count":    gorm.Expr("payment_gateway_events.gateway_event_try_count + 1"),
			"gateway_event_status":       status,
			"gateway_event_payload":      payload,
			"gateway_event_signature":    row.GatewayEventSignature,
			"gateway_event_class_id":     row.GatewayEventClassID,
			"gateway_event_user_id":      row.GatewayEventUserID,
			"gateway_event_error":        nil,
			"gateway_event_processed_at": nil,
			"gateway_event_updated_at":   now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "recording gateway event")
	}

	var out model.PaymentGatewayEventModel
	if err := db.Where("gateway_event_provider = ? AND gateway_event_external_id = ?", in.Provider, in.ExternalID).
		Take(&out).Error; err != nil {
		return nil, errors.Wrap(err, "reloading gateway event")
	}
	return &out, nil
}

// Finish menandai hasil proses; errCode kosong = success.
func (r *GatewayEventRecorder) Finish(ctx context.Context, id uuid.UUID, errCode string) error {
	now := r.now()
	status := model.GatewayEventStatusSuccess
	var errVal any
	if errCode != "" {
		status = model.GatewayEventStatusFailed
		errVal = errCode
	}
	return r.DB.WithContext(ctx).Model(&model.PaymentGatewayEventModel{}).
		Where("gateway_event_id = ?", id).
		Updates(map[string]any{
			"gateway_event_status":       status,
			"gateway_event_error":        errVal,
			"gateway_event_processed_at": now,
			"gateway_event_updated_at":   now,
		}).Error
}

type GatewayEventFilter struct {
	Provider   string
	Status     string
	ExternalID string
	ClassID    string
	Start      *time.Time
	End        *time.Time
	Offset     int
	Limit      int
}

func (r *GatewayEventRecorder) List(ctx context.Context, f GatewayEventFilter) ([]model.PaymentGatewayEventModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.PaymentGatewayEventModel{})
	if f.Provider != "" {
		q = q.Where("gateway_event_provider = ?", strings.ToLower(f.Provider))
	}
	if f.Status != "" {
		q = q.Where("gateway_event_status = ?", strings.ToLower(f.Status))
	}
	if f.ExternalID != "" {
		q = q.Where("gateway_event_external_id = ?", f.ExternalID)
	}
	if f.ClassID != "" {
		q = q.Where("gateway_event_class_id = ?", f.ClassID)
	}
	if f.Start != nil {
		q = q.Where("gateway_event_received_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("gateway_event_received_at < ?", *f.End)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.PaymentGatewayEventModel
	if err := q.Order("gateway_event_received_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func maskedJSON(v map[string]any) (datatypes.JSON, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := sonic.Marshal(helper.MaskSensitive(v))
	if err != nil {
		return nil, errors.Wrap(err, "encoding masked payload")
	}
	return datatypes.JSON(b), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
