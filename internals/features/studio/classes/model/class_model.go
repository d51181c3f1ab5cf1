package model

import (
	"time"

	"gorm.io/datatypes"
)

type DanceStyle string
type ClassLevel string

const (
	StyleBallet       DanceStyle = "Ballet"
	StyleContemporary DanceStyle = "Contemporary"
	StyleHipHop       DanceStyle = "Hip Hop"
	StyleJazz         DanceStyle = "Jazz"
	StyleBallroom     DanceStyle = "Ballroom"
	StyleSalsa        DanceStyle = "Salsa"
	StyleTap          DanceStyle = "Tap"
	StyleBreakdancing DanceStyle = "Breakdancing"
)

const (
	LevelBeginner     ClassLevel = "beginner"
	LevelIntermediate ClassLevel = "intermediate"
	LevelAdvanced     ClassLevel = "advanced"
)

/*
classes
  - class_enrolled == len(class_enrolled_students), class_enrolled <= class_capacity
  - class_version naik setiap kali enrolled berubah (optimistic concurrency)
  - harga disimpan dalam sen (integer)
*/
type ClassModel struct {
	ClassID       string  `gorm:"column:class_id;primaryKey;size:64" json:"class_id"`
	ClassStudioID *string `gorm:"column:class_studio_id;size:64;index" json:"class_studio_id,omitempty"`

	ClassName            string     `gorm:"column:class_name;size:160;not null" json:"class_name"`
	ClassDescription     *string    `gorm:"column:class_description" json:"class_description,omitempty"`
	ClassTeacherID       *string    `gorm:"column:class_teacher_id;size:128;index" json:"class_teacher_id,omitempty"`
	ClassSchedule        *string    `gorm:"column:class_schedule;size:160" json:"class_schedule,omitempty"`
	ClassStyle           DanceStyle `gorm:"column:class_style;size:32;not null" json:"class_style"`
	ClassLevel           ClassLevel `gorm:"column:class_level;size:16;not null" json:"class_level"`
	ClassLocation        *string    `gorm:"column:class_location;size:160" json:"class_location,omitempty"`
	ClassDurationMinutes int        `gorm:"column:class_duration_minutes;not null;default:60" json:"class_duration_minutes"`

	ClassCapacity         int                         `gorm:"column:class_capacity;not null" json:"class_capacity"`
	ClassEnrolled         int                         `gorm:"column:class_enrolled;not null;default:0" json:"class_enrolled"`
	ClassEnrolledStudents datatypes.JSONSlice[string] `gorm:"column:class_enrolled_students" json:"class_enrolled_students"`
	ClassPriceCents       int64                       `gorm:"column:class_price_cents;not null" json:"class_price_cents"`
	ClassVersion          int64                       `gorm:"column:class_version;not null;default:0" json:"class_version"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (c *ClassModel) IsFull() bool {
	return c.ClassEnrolled >= c.ClassCapacity
}

func (c *ClassModel) HasStudent(userID string) bool {
	for _, id := range c.ClassEnrolledStudents {
		if id == userID {
			return true
		}
	}
	return false
}

// WithoutStudent mengembalikan salinan daftar tanpa userID.
func (c *ClassModel) WithoutStudent(userID string) []string {
	out := make([]string, 0, len(c.ClassEnrolledStudents))
	for _, id := range c.ClassEnrolledStudents {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

// WithStudent mengembalikan salinan daftar + userID (tanpa duplikat).
func (c *ClassModel) WithStudent(userID string) []string {
	out := make([]string, 0, len(c.ClassEnrolledStudents)+1)
	out = append(out, c.ClassEnrolledStudents...)
	if !c.HasStudent(userID) {
		out = append(out, userID)
	}
	return out
}

var AllStyles = []DanceStyle{
	StyleBallet, StyleContemporary, StyleHipHop, StyleJazz,
	StyleBallroom, StyleSalsa, StyleTap, StyleBreakdancing,
}

func IsValidStyle(s string) bool {
	for _, v := range AllStyles {
		if string(v) == s {
			return true
		}
	}
	return false
}

func IsValidLevel(s string) bool {
	switch ClassLevel(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}
