package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/attendance/model"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	"danceflow_backend/internals/helpers/applog"
)

const DateLayout = "2006-01-02"

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNotClassTeacher    = errors.New("only the class teacher or an admin can mark attendance")
)

// NotEnrolledError: ada id di daftar hadir yang bukan siswa kelas.
type NotEnrolledError struct {
	UserIDs []string
}

func (e *NotEnrolledError) Error() string {
	return fmt.Sprintf("students not enrolled in class: %s", strings.Join(e.UserIDs, ", "))
}

type AttendanceService struct {
	DB     *gorm.DB
	Mailer email.Enqueuer
}

func NewAttendanceService(db *gorm.DB, mailer email.Enqueuer) *AttendanceService {
	return &AttendanceService{DB: db, Mailer: mailer}
}

// Actor = siapa yang menandai absen.
type Actor struct {
	UserID   string
	Role     string
	StudioID string
}

func (s *AttendanceService) loadClass(ctx context.Context, studioID, classID string) (*classModel.ClassModel, error) {
	var c classModel.ClassModel
	q := s.DB.WithContext(ctx).Where("class_id = ?", classID)
	if studioID != "" {
		q = q.Where("class_studio_id = ?", studioID)
	}
	if err := q.Take(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

func normalizeDate(raw string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(DateLayout), nil
}

// Mark menyimpan (upsert) daftar hadir untuk satu tanggal lalu mengirim email hadir/absen
// ke semua siswa terdaftar.
func (s *AttendanceService) Mark(ctx context.Context, actor Actor, classID, date string, present []string) (*model.ClassAttendanceModel, []string, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return nil, nil, err
	}
	cls, err := s.loadClass(ctx, actor.StudioID, classID)
	if err != nil {
		return nil, nil, err
	}
	// kelas tanpa pengajar hanya bisa diabsen admin
	if actor.Role == constants.RoleTeacher && (cls.ClassTeacherID == nil || *cls.ClassTeacherID != actor.UserID) {
		return nil, nil, ErrNotClassTeacher
	}

	seen := make(map[string]struct{}, len(present))
	ids := make([]string, 0, len(present))
	var notEnrolled []string
	for _, id := range present {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		if !cls.HasStudent(id) {
			notEnrolled = append(notEnrolled, id)
			continue
		}
		ids = append(ids, id)
	}
	if len(notEnrolled) > 0 {
		return nil, nil, &NotEnrolledError{UserIDs: notEnrolled}
	}

	now := time.Now()
	row := model.ClassAttendanceModel{
		ClassAttendanceClassID:         cls.ClassID,
		ClassAttendanceDate:            day,
		ClassAttendancePresentStudents: ids,
		ClassAttendanceMarkedBy:        &actor.UserID,
	}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "class_attendance_class_id"}, {Name: "class_attendance_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"class_attendance_present_students": datatypes.JSONSlice[string](ids),
			"class_attendance_marked_by":        actor.UserID,
			"class_attendance_updated_at":       now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, nil, err
	}

	out, err := s.Get(ctx, actor.StudioID, cls.ClassID, day)
	if err != nil {
		return nil, nil, err
	}
	applog.Info("attendance marked", "class_id", cls.ClassID, "date", day, "present", len(ids), "marked_by", actor.UserID)
	s.notify(ctx, cls, out)
	return out, []string(cls.ClassEnrolledStudents), nil
}

func (s *AttendanceService) Get(ctx context.Context, studioID, classID, date string) (*model.ClassAttendanceModel, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadClass(ctx, studioID, classID); err != nil {
		return nil, err
	}
	var m model.ClassAttendanceModel
	err = s.DB.WithContext(ctx).
		Where("class_attendance_class_id = ? AND class_attendance_date = ?", classID, day).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AttendanceService) List(ctx context.Context, studioID, classID string, offset, limit int) ([]model.ClassAttendanceModel, int64, error) {
	if _, err := s.loadClass(ctx, studioID, classID); err != nil {
		return nil, 0, err
	}
	q := s.DB.WithContext(ctx).Model(&model.ClassAttendanceModel{}).Where("class_attendance_class_id = ?", classID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ClassAttendanceModel
	if err := q.Order("class_attendance_date DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// notify: best effort, kegagalan hanya di-log.
func (s *AttendanceService) notify(ctx context.Context, c *classModel.ClassModel, rec *model.ClassAttendanceModel) {
	if s.Mailer == nil || len(c.ClassEnrolledStudents) == 0 {
		return
	}
	var users []userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id IN ?", []string(c.ClassEnrolledStudents)).Find(&users).Error; err != nil {
		applog.Error("load students for attendance email failed", err, "class_id", c.ClassID)
		return
	}
	msgs := make([]email.Message, 0, len(users))
	for _, u := range users {
		status := model.AttendanceAbsent
		if rec.IsPresent(u.ID) {
			status = model.AttendancePresent
		}
		m, err := email.Render(email.TplAttendanceUpdate, mail.Address{Name: u.UserName, Address: u.Email}, email.TemplateData{
			ClassName: c.ClassName,
			Date:      rec.ClassAttendanceDate,
			Status:    string(status),
		})
		if err != nil {
			applog.Error("render attendance email failed", err, "class_id", c.ClassID)
			continue
		}
		msgs = append(msgs, m)
	}
	if n := s.Mailer.Enqueue(msgs...); n < len(msgs) {
		applog.Warn("email queue full, attendance emails dropped", "class_id", c.ClassID, "dropped", len(msgs)-n)
	}
}
