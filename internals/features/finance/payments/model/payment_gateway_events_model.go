package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
payment_gateway_events = LOG WEBHOOK / CALLBACK PAYMENT GATEWAY
  - satu row per (provider, external_id); pengiriman ulang menaikkan try_count
  - payload disimpan sudah di-mask
*/
type PaymentGatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;primaryKey" json:"gateway_event_id"`

	GatewayEventProvider   PaymentGatewayProvider `gorm:"column:gateway_event_provider;size:32;not null;uniqueIndex:uq_gateway_events_provider_external" json:"gateway_event_provider"`
	GatewayEventExternalID string                 `gorm:"column:gateway_event_external_id;size:160;not null;uniqueIndex:uq_gateway_events_provider_external" json:"gateway_event_external_id"`
	GatewayEventClassID    *string                `gorm:"column:gateway_event_class_id;size:64;index" json:"gateway_event_class_id,omitempty"`
	GatewayEventUserID     *string                `gorm:"column:gateway_event_user_id;size:128" json:"gateway_event_user_id,omitempty"`

	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload" json:"gateway_event_payload,omitempty"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature;size:128" json:"gateway_event_signature,omitempty"`

	GatewayEventStatus   GatewayEventStatus `gorm:"column:gateway_event_status;size:16;not null;default:received" json:"gateway_event_status"`
	GatewayEventError    *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`
	GatewayEventTryCount int                `gorm:"column:gateway_event_try_count;not null;default:0" json:"gateway_event_try_count"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`

	GatewayEventCreatedAt time.Time `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
	GatewayEventUpdatedAt time.Time `gorm:"column:gateway_event_updated_at;autoUpdateTime" json:"gateway_event_updated_at"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "payment_gateway_events"
}
