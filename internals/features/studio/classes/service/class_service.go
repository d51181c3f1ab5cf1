package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/classes/dto"
	"danceflow_backend/internals/features/studio/classes/model"
	enrollmentModel "danceflow_backend/internals/features/studio/enrollments/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/helpers/applog"
)

var (
	ErrClassNotFound         = errors.New("class not found")
	ErrCapacityBelowEnrolled = errors.New("capacity cannot be lower than current enrollment")
	ErrClassHasEnrollments   = errors.New("class still has active enrollments")
	ErrClassIDTaken          = errors.New("class id already exists")
)

type ClassService struct {
	DB     *gorm.DB
	Mailer email.Enqueuer
}

func NewClassService(db *gorm.DB, mailer email.Enqueuer) *ClassService {
	return &ClassService{DB: db, Mailer: mailer}
}

func (s *ClassService) scoped(ctx context.Context, studioID string) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&model.ClassModel{})
	if studioID != "" {
		q = q.Where("class_studio_id = ?", studioID)
	}
	return q
}

func (s *ClassService) List(ctx context.Context, f dto.ListClassQuery) ([]model.ClassModel, int64, error) {
	q := s.scoped(ctx, f.StudioID)
	if f.Style != "" {
		q = q.Where("class_style = ?", f.Style)
	}
	if f.Level != "" {
		q = q.Where("class_level = ?", strings.ToLower(f.Level))
	}
	if f.TeacherID != "" {
		q = q.Where("class_teacher_id = ?", f.TeacherID)
	}
	if f.Q != "" {
		q = q.Where("LOWER(class_name) LIKE ?", "%"+strings.ToLower(f.Q)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ClassModel
	if err := q.Order("class_created_at DESC, class_id ASC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *ClassService) Get(ctx context.Context, studioID, id string) (*model.ClassModel, error) {
	var m model.ClassModel
	err := s.scoped(ctx, studioID).Where("class_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ClassService) Create(ctx context.Context, studioID, teacherID string, req dto.CreateClassRequest) (*model.ClassModel, error) {
	priceCents, err := helper.ToCents(req.Price)
	if err != nil {
		return nil, err
	}
	m := req.ToModel(priceCents)
	if m.ClassID == "" {
		m.ClassID = uuid.NewString()
	}
	if studioID != "" {
		m.ClassStudioID = &studioID
	}
	if m.ClassTeacherID == nil && teacherID != "" {
		m.ClassTeacherID = &teacherID
	}

	err = s.DB.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrClassIDTaken
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update menerapkan patch. Perubahan kapasitas dijaga agar tidak di bawah enrolled,
// dan versi dinaikkan supaya transaksi enrollment yang sedang berjalan membaca ulang.
func (s *ClassService) Update(ctx context.Context, studioID, id string, req dto.UpdateClassRequest) (*model.ClassModel, error) {
	var updated model.ClassModel
	var before model.ClassModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("class_id = ?", id)
		if studioID != "" {
			q = q.Where("class_studio_id = ?", studioID)
		}
		if err := q.Take(&before).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		set := map[string]any{"class_updated_at": time.Now()}
		if req.Name != nil {
			set["class_name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			set["class_description"] = *req.Description
		}
		if req.TeacherID != nil {
			set["class_teacher_id"] = *req.TeacherID
		}
		if req.Schedule != nil {
			set["class_schedule"] = *req.Schedule
		}
		if req.Style != nil {
			set["class_style"] = *req.Style
		}
		if req.Level != nil {
			set["class_level"] = strings.ToLower(*req.Level)
		}
		if req.Location != nil {
			set["class_location"] = *req.Location
		}
		if req.DurationMinutes != nil {
			set["class_duration_minutes"] = *req.DurationMinutes
		}
		guard := tx.Model(&model.ClassModel{}).Where("class_id = ?", id)
		if req.Capacity != nil {
			set["class_capacity"] = *req.Capacity
			guard = guard.Where("class_enrolled <= ?", *req.Capacity)
		}
		if req.Price != nil {
			cents, err := helper.ToCents(*req.Price)
			if err != nil {
				return err
			}
			set["class_price_cents"] = cents
		}
		if req.Capacity != nil || req.Price != nil {
			set["class_version"] = gorm.Expr("class_version + 1")
		}

		res := guard.Updates(set)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityBelowEnrolled
		}
		return tx.Where("class_id = ?", id).Take(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if changed := scheduleChanges(&before, &updated); changed != "" {
		s.notifyClassUpdate(ctx, &updated, changed)
	}
	return &updated, nil
}

func (s *ClassService) Delete(ctx context.Context, studioID, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ClassModel
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("class_id = ?", id)
		if studioID != "" {
			q = q.Where("class_studio_id = ?", studioID)
		}
		if err := q.Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_class_id = ? AND enrollment_status = ?", id, enrollmentModel.EnrollmentStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 || m.ClassEnrolled > 0 {
			return ErrClassHasEnrollments
		}
		return tx.Where("class_id = ?", id).Delete(&model.ClassModel{}).Error
	})
}

func scheduleChanges(before, after *model.ClassModel) string {
	var parts []string
	if deref(before.ClassSchedule) != deref(after.ClassSchedule) {
		parts = append(parts, "Schedule is now "+deref(after.ClassSchedule)+".")
	}
	if deref(before.ClassLocation) != deref(after.ClassLocation) {
		parts = append(parts, "Location is now "+deref(after.ClassLocation)+".")
	}
	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// notifyClassUpdate: best effort, kegagalan hanya di-log.
func (s *ClassService) notifyClassUpdate(ctx context.Context, c *model.ClassModel, details string) {
	if s.Mailer == nil || len(c.ClassEnrolledStudents) == 0 {
		return
	}
	var users []userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id IN ?", []string(c.ClassEnrolledStudents)).Find(&users).Error; err != nil {
		applog.Error("load students for class update failed", err, "class_id", c.ClassID)
		return
	}
	msgs := make([]email.Message, 0, len(users))
	for _, u := range users {
		m, err := email.Render(email.TplClassUpdate, mail.Address{Name: u.UserName, Address: u.Email}, email.TemplateData{
			ClassName:  c.ClassName,
			UpdateType: "Schedule change",
			Details:    details,
		})
		if err != nil {
			applog.Error("render class update email failed", err, "class_id", c.ClassID)
			continue
		}
		msgs = append(msgs, m)
	}
	s.Mailer.Enqueue(msgs...)
}
