package service

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"danceflow_backend/internals/features/finance/analytics/dto"
	paymentModel "danceflow_backend/internals/features/finance/payments/model"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	enrollmentModel "danceflow_backend/internals/features/studio/enrollments/model"
	helper "danceflow_backend/internals/helpers"
)

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

type SummaryFilter struct {
	StudioID string
	From     *time.Time
	To       *time.Time
}

type revenueRow struct {
	ClassID    string
	TotalCents int64
	Count      int64
}

// Summary: revenue dari payment completed + tingkat keterisian per kelas.
func (s *AnalyticsService) Summary(ctx context.Context, f SummaryFilter) (*dto.SummaryResponse, error) {
	db := s.DB.WithContext(ctx)

	pq := db.Model(&paymentModel.PaymentModel{}).
		Select("payment_class_id AS class_id, COALESCE(SUM(payment_amount_cents), 0) AS total_cents, COUNT(*) AS count").
		Where("payment_status = ?", paymentModel.PaymentStatusCompleted)
	if f.StudioID != "" {
		pq = pq.Where("payment_studio_id = ?", f.StudioID)
	}
	if f.From != nil {
		pq = pq.Where("payment_processed_at >= ?", *f.From)
	}
	if f.To != nil {
		pq = pq.Where("payment_processed_at < ?", *f.To)
	}
	var revenue []revenueRow
	if err := pq.Group("payment_class_id").Scan(&revenue).Error; err != nil {
		return nil, err
	}

	cq := db.Model(&classModel.ClassModel{})
	if f.StudioID != "" {
		cq = cq.Where("class_studio_id = ?", f.StudioID)
	}
	var classes []classModel.ClassModel
	if err := cq.Order("class_name ASC").Find(&classes).Error; err != nil {
		return nil, err
	}

	eq := db.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_status = ?", enrollmentModel.EnrollmentStatusActive)
	if f.StudioID != "" {
		eq = eq.Where("enrollment_class_id IN (?)",
			db.Model(&classModel.ClassModel{}).Select("class_id").Where("class_studio_id = ?", f.StudioID))
	}
	var active int64
	if err := eq.Count(&active).Error; err != nil {
		return nil, err
	}

	byClass := make(map[string]revenueRow, len(revenue))
	out := &dto.SummaryResponse{From: f.From, To: f.To, ActiveEnrollments: active, ClassCount: int64(len(classes))}
	var totalCents int64
	for _, r := range revenue {
		byClass[r.ClassID] = r
		totalCents += r.TotalCents
		out.PaymentCount += r.Count
	}
	out.Revenue = helper.CentsToAmount(totalCents)
	out.RevenueFormatted = helper.FormatCents(totalCents)

	out.Classes = make([]dto.ClassFill, 0, len(classes))
	var fillSum float64
	for _, c := range classes {
		fill := 0.0
		if c.ClassCapacity > 0 {
			fill = round2(float64(c.ClassEnrolled) / float64(c.ClassCapacity))
		}
		fillSum += fill
		out.Classes = append(out.Classes, dto.ClassFill{
			ClassID:  c.ClassID,
			Name:     c.ClassName,
			Enrolled: c.ClassEnrolled,
			Capacity: c.ClassCapacity,
			FillRate: fill,
			Revenue:  helper.CentsToAmount(byClass[c.ClassID].TotalCents),
		})
	}
	if len(classes) > 0 {
		out.AverageFillRate = round2(fillSum / float64(len(classes)))
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
