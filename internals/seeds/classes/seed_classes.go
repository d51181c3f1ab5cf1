package classes

import (
	_ "embed"
	"log"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danceflow_backend/internals/features/studio/classes/dto"
	"danceflow_backend/internals/features/studio/classes/model"
	helper "danceflow_backend/internals/helpers"
)

//go:embed data_classes.json
var DefaultData []byte

type ClassSeed struct {
	dto.CreateClassRequest
}

// SeedClassesFromJSON memasukkan kelas contoh; kelas yang id-nya sudah ada dilewati.
func SeedClassesFromJSON(db *gorm.DB, data []byte, studioID, teacherID string) (int, error) {
	var seeds []ClassSeed
	if err := sonic.Unmarshal(data, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode class seeds")
	}

	rows := make([]model.ClassModel, 0, len(seeds))
	for _, s := range seeds {
		s.Normalize()
		cents, err := helper.ToCents(s.Price)
		if err != nil {
			return 0, errors.Wrapf(err, "class %q", s.Name)
		}
		m := s.ToModel(cents)
		if studioID != "" {
			m.ClassStudioID = &studioID
		}
		if m.ClassTeacherID == nil && teacherID != "" {
			m.ClassTeacherID = &teacherID
		}
		rows = append(rows, *m)
	}
	if len(rows) == 0 {
		log.Println("[INFO] no class seeds to insert")
		return 0, nil
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "insert class seeds")
	}
	log.Printf("[INFO] seeded %d/%d classes", res.RowsAffected, len(rows))
	return int(res.RowsAffected), nil
}
