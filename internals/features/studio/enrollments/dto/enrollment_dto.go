package dto

import (
	"time"

	"danceflow_backend/internals/features/studio/enrollments/model"
	helper "danceflow_backend/internals/helpers"
)

type EnrollmentResponse struct {
	EnrollmentID string                 `json:"enrollment_id"`
	UserID       string                 `json:"user_id"`
	ClassID      string                 `json:"class_id"`
	PaymentID    string                 `json:"payment_id"`
	Amount       float64                `json:"amount"`
	Status       model.EnrollmentStatus `json:"status"`
	EnrolledAt   time.Time              `json:"enrolled_at"`
	CancelledAt  *time.Time             `json:"cancelled_at,omitempty"`
}

func FromModel(m *model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: m.EnrollmentID,
		UserID:       m.EnrollmentUserID,
		ClassID:      m.EnrollmentClassID,
		PaymentID:    m.EnrollmentPaymentID,
		Amount:       helper.CentsToAmount(m.EnrollmentAmountCents),
		Status:       m.EnrollmentStatus,
		EnrolledAt:   m.EnrollmentEnrolledAt,
		CancelledAt:  m.EnrollmentCancelledAt,
	}
}

func FromModels(rows []model.EnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
