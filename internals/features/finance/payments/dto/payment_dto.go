package dto

import (
	"time"

	"gorm.io/datatypes"

	"danceflow_backend/internals/features/finance/payments/model"
	helper "danceflow_backend/internals/helpers"
)

type PaymentResponse struct {
	PaymentID          string              `json:"payment_id"`
	UserID             string              `json:"user_id"`
	ClassID            string              `json:"class_id"`
	StudioID           *string             `json:"studio_id,omitempty"`
	Amount             float64             `json:"amount"`
	Method             string              `json:"method"`
	Status             model.PaymentStatus `json:"status"`
	TransactionDetails datatypes.JSON      `json:"transaction_details,omitempty"`
	EnrollmentID       string              `json:"enrollment_id"`
	ProcessedAt        time.Time           `json:"processed_at"`
	CreatedAt          time.Time           `json:"created_at"`
}

func FromPaymentModel(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:          m.PaymentID,
		UserID:             m.PaymentUserID,
		ClassID:            m.PaymentClassID,
		StudioID:           m.PaymentStudioID,
		Amount:             helper.CentsToAmount(m.PaymentAmountCents),
		Method:             m.PaymentMethod,
		Status:             m.PaymentStatus,
		TransactionDetails: m.PaymentTransactionDetails,
		EnrollmentID:       m.PaymentEnrollmentID,
		ProcessedAt:        m.PaymentProcessedAt,
		CreatedAt:          m.PaymentCreatedAt,
	}
}

func FromPaymentModels(rows []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromPaymentModel(&rows[i]))
	}
	return out
}

// Checkout (Midtrans Snap)
type CheckoutResponse struct {
	OrderID     string  `json:"order_id"`
	Token       string  `json:"token"`
	RedirectURL string  `json:"redirect_url"`
	Amount      float64 `json:"amount"`
}
