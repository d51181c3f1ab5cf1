package dto

import (
	"time"

	"danceflow_backend/internals/features/studio/attendance/model"
)

type MarkAttendanceRequest struct {
	PresentStudents []string `json:"presentStudents" validate:"dive,required,max=128"`
}

type AttendanceResponse struct {
	ClassID         string    `json:"class_id"`
	Date            string    `json:"date"`
	PresentStudents []string  `json:"present_students"`
	AbsentStudents  []string  `json:"absent_students,omitempty"`
	MarkedBy        *string   `json:"marked_by,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FromModel; enrolled dipakai untuk menghitung yang absen (boleh nil).
func FromModel(m *model.ClassAttendanceModel, enrolled []string) AttendanceResponse {
	out := AttendanceResponse{
		ClassID:         m.ClassAttendanceClassID,
		Date:            m.ClassAttendanceDate,
		PresentStudents: append([]string{}, m.ClassAttendancePresentStudents...),
		MarkedBy:        m.ClassAttendanceMarkedBy,
		UpdatedAt:       m.ClassAttendanceUpdatedAt,
	}
	for _, id := range enrolled {
		if !m.IsPresent(id) {
			out.AbsentStudents = append(out.AbsentStudents, id)
		}
	}
	return out
}

func FromModels(rows []model.ClassAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i], nil))
	}
	return out
}

// Progress siswa
type AttendanceEntry struct {
	Date    string `json:"date"`
	Present bool   `json:"present"`
}

type ClassProgress struct {
	ClassID        string            `json:"classId"`
	ClassName      string            `json:"className"`
	TotalSessions  int               `json:"totalClasses"`
	Attended       int               `json:"classesAttended"`
	AttendanceRate float64           `json:"attendanceRate"`
	History        []AttendanceEntry `json:"attendanceHistory"`
}

type StudentAttendance struct {
	UserID         string  `json:"user_id"`
	Attended       int     `json:"attended"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type ClassAttendanceReport struct {
	ClassID       string              `json:"class_id"`
	ClassName     string              `json:"class_name"`
	TotalSessions int                 `json:"total_sessions"`
	Students      []StudentAttendance `json:"students"`
}
