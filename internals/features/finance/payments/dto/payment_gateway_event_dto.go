package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"danceflow_backend/internals/features/finance/payments/model"
)

type PaymentGatewayEventResponse struct {
	ID          uuid.UUID                    `json:"id"`
	Provider    model.PaymentGatewayProvider `json:"provider"`
	ExternalID  string                       `json:"external_id"`
	ClassID     *string                      `json:"class_id,omitempty"`
	UserID      *string                      `json:"user_id,omitempty"`
	Payload     datatypes.JSON               `json:"payload,omitempty"`
	Status      model.GatewayEventStatus     `json:"status"`
	Error       *string                      `json:"error,omitempty"`
	TryCount    int                          `json:"try_count"`
	ReceivedAt  time.Time                    `json:"received_at"`
	ProcessedAt *time.Time                   `json:"processed_at,omitempty"`
}

func FromGatewayEventModel(m *model.PaymentGatewayEventModel) PaymentGatewayEventResponse {
	return PaymentGatewayEventResponse{
		ID:          m.GatewayEventID,
		Provider:    m.GatewayEventProvider,
		ExternalID:  m.GatewayEventExternalID,
		ClassID:     m.GatewayEventClassID,
		UserID:      m.GatewayEventUserID,
		Payload:     m.GatewayEventPayload,
		Status:      m.GatewayEventStatus,
		Error:       m.GatewayEventError,
		TryCount:    m.GatewayEventTryCount,
		ReceivedAt:  m.GatewayEventReceivedAt,
		ProcessedAt: m.GatewayEventProcessedAt,
	}
}
