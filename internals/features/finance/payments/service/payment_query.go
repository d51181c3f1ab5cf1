package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"danceflow_backend/internals/features/finance/payments/model"
)

type PaymentFilter struct {
	StudioID string
	UserID   string
	ClassID  string
	Status   string
	Method   string
	From     *time.Time
	To       *time.Time
	Offset   int
	Limit    int
}

type PaymentQuery struct {
	DB *gorm.DB
}

func NewPaymentQuery(db *gorm.DB) *PaymentQuery {
	return &PaymentQuery{DB: db}
}

func (s *PaymentQuery) List(ctx context.Context, f PaymentFilter) ([]model.PaymentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.PaymentModel{})
	if f.StudioID != "" {
		q = q.Where("payment_studio_id = ?", f.StudioID)
	}
	if f.UserID != "" {
		q = q.Where("payment_user_id = ?", f.UserID)
	}
	if f.ClassID != "" {
		q = q.Where("payment_class_id = ?", f.ClassID)
	}
	if f.Status != "" {
		q = q.Where("payment_status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.From != nil {
		q = q.Where("payment_processed_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("payment_processed_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.PaymentModel
	if err := q.Order("payment_processed_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *PaymentQuery) Get(ctx context.Context, paymentID string) (*model.PaymentModel, error) {
	var m model.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", paymentID).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
