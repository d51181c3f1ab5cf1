package seeds

import (
	"gorm.io/gorm"

	"danceflow_backend/internals/seeds/classes"
	"danceflow_backend/internals/seeds/users"
)

type Options struct {
	StudioID  string
	TeacherID string
}

// RunAllSeeds: users dulu (teacher dipakai kelas contoh), lalu kelas.
func RunAllSeeds(db *gorm.DB, opts Options) error {
	if _, err := users.SeedUsersFromJSON(db, users.DefaultData, opts.StudioID); err != nil {
		return err
	}
	teacher := opts.TeacherID
	if teacher == "" {
		teacher = "teacher-demo"
	}
	_, err := classes.SeedClassesFromJSON(db, classes.DefaultData, opts.StudioID, teacher)
	return err
}
