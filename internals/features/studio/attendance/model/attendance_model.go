package model

import (
	"time"

	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// class_attendance: satu row per (kelas, tanggal)
type ClassAttendanceModel struct {
	ClassAttendanceClassID         string                      `gorm:"column:class_attendance_class_id;primaryKey;size:64" json:"class_attendance_class_id"`
	ClassAttendanceDate            string                      `gorm:"column:class_attendance_date;primaryKey;size:10" json:"class_attendance_date"`
	ClassAttendancePresentStudents datatypes.JSONSlice[string] `gorm:"column:class_attendance_present_students" json:"class_attendance_present_students"`
	ClassAttendanceMarkedBy        *string                     `gorm:"column:class_attendance_marked_by;size:128" json:"class_attendance_marked_by,omitempty"`

	ClassAttendanceCreatedAt time.Time `gorm:"column:class_attendance_created_at;autoCreateTime" json:"class_attendance_created_at"`
	ClassAttendanceUpdatedAt time.Time `gorm:"column:class_attendance_updated_at;autoUpdateTime" json:"class_attendance_updated_at"`
}

func (ClassAttendanceModel) TableName() string {
	return "class_attendance"
}

func (m *ClassAttendanceModel) IsPresent(userID string) bool {
	for _, id := range m.ClassAttendancePresentStudents {
		if id == userID {
			return true
		}
	}
	return false
}
