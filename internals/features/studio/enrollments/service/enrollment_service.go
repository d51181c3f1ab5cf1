package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "danceflow_backend/internals/databases"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	"danceflow_backend/internals/features/studio/enrollments/model"
)

var ErrEnrollmentNotFound = errors.New("active enrollment not found")

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// Unenroll membatalkan enrollment aktif dan mengurangi kursi kelas dalam satu transaksi.
// Payment tidak disentuh.
func (s *EnrollmentService) Unenroll(ctx context.Context, studioID, userID, classID string) (*model.EnrollmentModel, error) {
	var out model.EnrollmentModel

	err := database.WithTxRetry(ctx, s.DB, database.DefaultTxAttempts, func(tx *gorm.DB) error {
		var cls classModel.ClassModel
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("class_id = ?", classID)
		if studioID != "" {
			q = q.Where("class_studio_id = ?", studioID)
		}
		if err := q.Take(&cls).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		var e model.EnrollmentModel
		err := tx.Where("enrollment_user_id = ? AND enrollment_class_id = ? AND enrollment_status = ?",
			userID, classID, model.EnrollmentStatusActive).Take(&e).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		students := cls.WithoutStudent(userID)
		res := tx.Model(&classModel.ClassModel{}).
			Where("class_id = ? AND class_version = ? AND class_enrolled > 0", cls.ClassID, cls.ClassVersion).
			Updates(map[string]any{
				"class_enrolled":          len(students),
				"class_enrolled_students": datatypes.JSONSlice[string](students),
				"class_version":           cls.ClassVersion + 1,
				"class_updated_at":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrTxConflict
		}

		res = tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_id = ? AND enrollment_status = ?", e.EnrollmentID, model.EnrollmentStatusActive).
			Updates(map[string]any{
				"enrollment_status":       model.EnrollmentStatusCancelled,
				"enrollment_cancelled_at": now,
				"enrollment_updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrTxConflict
		}

		e.EnrollmentStatus = model.EnrollmentStatusCancelled
		e.EnrollmentCancelledAt = &now
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type ListFilter struct {
	UserID   string
	ClassID  string
	StudioID string
	Status   string
	Offset   int
	Limit    int
}

func (s *EnrollmentService) List(ctx context.Context, f ListFilter) ([]model.EnrollmentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.EnrollmentModel{})
	if f.UserID != "" {
		q = q.Where("enrollment_user_id = ?", f.UserID)
	}
	if f.ClassID != "" {
		q = q.Where("enrollment_class_id = ?", f.ClassID)
	}
	if f.StudioID != "" {
		q = q.Where("enrollment_class_id IN (?)",
			s.DB.Model(&classModel.ClassModel{}).Select("class_id").Where("class_studio_id = ?", f.StudioID))
	}
	if f.Status != "" {
		q = q.Where("enrollment_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EnrollmentModel
	if err := q.Order("enrollment_enrolled_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
