package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
)

/*
enrollments
  - PK = idempotency key: hex(sha256(userId_classId_paymentId))
  - maksimal satu baris 'active' per (user, class) → partial unique index
*/
type EnrollmentModel struct {
	EnrollmentID        string `gorm:"column:enrollment_id;primaryKey;size:64" json:"enrollment_id"`
	EnrollmentUserID    string `gorm:"column:enrollment_user_id;size:128;not null;index;uniqueIndex:uq_enrollments_active_user_class,where:enrollment_status = 'active'" json:"enrollment_user_id"`
	EnrollmentClassID   string `gorm:"column:enrollment_class_id;size:64;not null;index;uniqueIndex:uq_enrollments_active_user_class,where:enrollment_status = 'active'" json:"enrollment_class_id"`
	EnrollmentPaymentID string `gorm:"column:enrollment_payment_id;size:128;not null;index" json:"enrollment_payment_id"`

	EnrollmentAmountCents int64            `gorm:"column:enrollment_amount_cents;not null" json:"enrollment_amount_cents"`
	EnrollmentStatus      EnrollmentStatus `gorm:"column:enrollment_status;size:16;not null;default:active" json:"enrollment_status"`

	EnrollmentEnrolledAt  time.Time  `gorm:"column:enrollment_enrolled_at;not null" json:"enrollment_enrolled_at"`
	EnrollmentCancelledAt *time.Time `gorm:"column:enrollment_cancelled_at" json:"enrollment_cancelled_at,omitempty"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
