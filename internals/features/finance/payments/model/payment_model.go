package model

import (
	"time"

	"gorm.io/datatypes"
)

/*
payments
  - PK = payment id dari gateway → satu payment hanya tercatat sekali
  - transaction details disimpan sudah di-mask
*/
type PaymentModel struct {
	PaymentID       string  `gorm:"column:payment_id;primaryKey;size:128" json:"payment_id"`
	PaymentUserID   string  `gorm:"column:payment_user_id;size:128;not null;index" json:"payment_user_id"`
	PaymentClassID  string  `gorm:"column:payment_class_id;size:64;not null;index" json:"payment_class_id"`
	PaymentStudioID *string `gorm:"column:payment_studio_id;size:64;index" json:"payment_studio_id,omitempty"`

	PaymentAmountCents int64         `gorm:"column:payment_amount_cents;not null" json:"payment_amount_cents"`
	PaymentMethod      string        `gorm:"column:payment_method;size:64;not null" json:"payment_method"`
	PaymentStatus      PaymentStatus `gorm:"column:payment_status;size:16;not null" json:"payment_status"`

	PaymentTransactionDetails datatypes.JSON `gorm:"column:payment_transaction_details" json:"payment_transaction_details,omitempty"`

	PaymentIdempotencyKey string `gorm:"column:payment_idempotency_key;size:64;not null;index" json:"payment_idempotency_key"`
	PaymentEnrollmentID   string `gorm:"column:payment_enrollment_id;size:64;not null" json:"payment_enrollment_id"`

	PaymentProcessedAt time.Time `gorm:"column:payment_processed_at;not null" json:"payment_processed_at"`
	PaymentCreatedAt   time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
