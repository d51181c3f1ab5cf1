package dto

import (
	"strings"
	"time"

	"danceflow_backend/internals/features/studio/classes/model"
	helper "danceflow_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateClassRequest struct {
	ClassID         string  `json:"class_id" validate:"omitempty,max=64"`
	Name            string  `json:"name" validate:"required,min=3,max=160"`
	Description     *string `json:"description,omitempty"`
	TeacherID       *string `json:"teacher_id,omitempty" validate:"omitempty,max=128"`
	Schedule        *string `json:"schedule,omitempty" validate:"omitempty,max=160"`
	Style           string  `json:"style" validate:"required,oneof='Ballet' 'Contemporary' 'Hip Hop' 'Jazz' 'Ballroom' 'Salsa' 'Tap' 'Breakdancing'"`
	Level           string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=160"`
	DurationMinutes int     `json:"duration_minutes" validate:"omitempty,gt=0,lte=600"`
	Capacity        int     `json:"capacity" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"required,gt=0"`
}

func (r *CreateClassRequest) Normalize() {
	r.ClassID = strings.TrimSpace(r.ClassID)
	r.Name = strings.TrimSpace(r.Name)
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	r.Style = strings.TrimSpace(r.Style)
	if r.DurationMinutes == 0 {
		r.DurationMinutes = 60
	}
}

// ToModel - ID, studio & teacher default diisi service.
func (r *CreateClassRequest) ToModel(priceCents int64) *model.ClassModel {
	return &model.ClassModel{
		ClassID:               r.ClassID,
		ClassName:             r.Name,
		ClassDescription:      r.Description,
		ClassTeacherID:        r.TeacherID,
		ClassSchedule:         r.Schedule,
		ClassStyle:            model.DanceStyle(r.Style),
		ClassLevel:            model.ClassLevel(r.Level),
		ClassLocation:         r.Location,
		ClassDurationMinutes:  r.DurationMinutes,
		ClassCapacity:         r.Capacity,
		ClassEnrolledStudents: []string{},
		ClassPriceCents:       priceCents,
	}
}

// UpdateClassRequest - partial update (pointer = field dikirim)
type UpdateClassRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=3,max=160"`
	Description     *string  `json:"description,omitempty"`
	TeacherID       *string  `json:"teacher_id,omitempty" validate:"omitempty,max=128"`
	Schedule        *string  `json:"schedule,omitempty" validate:"omitempty,max=160"`
	Style           *string  `json:"style,omitempty" validate:"omitempty,oneof='Ballet' 'Contemporary' 'Hip Hop' 'Jazz' 'Ballroom' 'Salsa' 'Tap' 'Breakdancing'"`
	Level           *string  `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,max=160"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0,lte=600"`
	Capacity        *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// SendReminderRequest - POST /api/a/classes/:id/remind
type SendReminderRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,max=32"`
}

type ListClassQuery struct {
	Style     string
	Level     string
	TeacherID string
	StudioID  string
	Q         string
	Offset    int
	Limit     int
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ClassResponse struct {
	ClassID         string           `json:"class_id"`
	StudioID        *string          `json:"studio_id,omitempty"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	TeacherID       *string          `json:"teacher_id,omitempty"`
	Schedule        *string          `json:"schedule,omitempty"`
	Style           model.DanceStyle `json:"style"`
	Level           model.ClassLevel `json:"level"`
	Location        *string          `json:"location,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	Capacity        int              `json:"capacity"`
	Enrolled        int              `json:"enrolled"`
	SpotsLeft       int              `json:"spots_left"`
	Price           float64          `json:"price"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// hanya untuk staff
	EnrolledStudents []string `json:"enrolled_students,omitempty"`
}

func FromModel(m *model.ClassModel, includeStudents bool) ClassResponse {
	out := ClassResponse{
		ClassID:         m.ClassID,
		StudioID:        m.ClassStudioID,
		Name:            m.ClassName,
		Description:     m.ClassDescription,
		TeacherID:       m.ClassTeacherID,
		Schedule:        m.ClassSchedule,
		Style:           m.ClassStyle,
		Level:           m.ClassLevel,
		Location:        m.ClassLocation,
		DurationMinutes: m.ClassDurationMinutes,
		Capacity:        m.ClassCapacity,
		Enrolled:        m.ClassEnrolled,
		SpotsLeft:       m.ClassCapacity - m.ClassEnrolled,
		Price:           helper.CentsToAmount(m.ClassPriceCents),
		CreatedAt:       m.ClassCreatedAt,
		UpdatedAt:       m.ClassUpdatedAt,
	}
	if out.SpotsLeft < 0 {
		out.SpotsLeft = 0
	}
	if includeStudents {
		out.EnrolledStudents = append([]string{}, m.ClassEnrolledStudents...)
	}
	return out
}

func FromModels(rows []model.ClassModel, includeStudents bool) []ClassResponse {
	out := make([]ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], includeStudents))
	}
	return out
}
