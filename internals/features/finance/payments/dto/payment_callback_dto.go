package dto

import (
	"strings"

	classDTO "danceflow_backend/internals/features/studio/classes/dto"
)

// PaymentCallbackRequest = body callback dari payment gateway.
// Timestamp dalam unix milliseconds; signature = hex HMAC-SHA256.
type PaymentCallbackRequest struct {
	ExternalID         string         `json:"externalId" validate:"required,max=64"`
	UserID             string         `json:"userId" validate:"required,max=128"`
	PaymentID          string         `json:"paymentId" validate:"required,max=128"`
	Amount             float64        `json:"amount" validate:"gt=0"`
	PaymentMethod      string         `json:"paymentMethod" validate:"required,max=64"`
	TransactionDetails map[string]any `json:"transactionDetails,omitempty"`
	Timestamp          int64          `json:"timestamp" validate:"required,gt=0"`
	Signature          string         `json:"signature" validate:"required,hexadecimal,len=64"`
}

func (r *PaymentCallbackRequest) Normalize() {
	r.ExternalID = strings.TrimSpace(r.ExternalID)
	r.UserID = strings.TrimSpace(r.UserID)
	r.PaymentID = strings.TrimSpace(r.PaymentID)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	r.Signature = strings.ToLower(strings.TrimSpace(r.Signature))
}

// CallbackResult = data di response sukses (termasuk replay).
type CallbackResult struct {
	TransactionID string                 `json:"transactionId"`
	EnrollmentID  string                 `json:"enrollmentId"`
	ClassDetails  classDTO.ClassResponse `json:"classDetails"`
	Amount        float64                `json:"amount"`
	Replayed      bool                   `json:"replayed"`
}
