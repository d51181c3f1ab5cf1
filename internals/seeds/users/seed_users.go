package users

import (
	_ "embed"
	"log"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/users/user/model"
)

//go:embed data_users.json
var DefaultData []byte

type UserSeed struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func SeedUsersFromJSON(db *gorm.DB, data []byte, studioID string) (int, error) {
	var inputs []UserSeed
	if err := sonic.Unmarshal(data, &inputs); err != nil {
		return 0, errors.Wrap(err, "decode user seeds")
	}

	inserted := 0
	for _, in := range inputs {
		if !constants.IsValidRole(in.Role) {
			return inserted, errors.Errorf("user %q has invalid role %q", in.Email, in.Role)
		}
		var existing model.UserModel
		if err := db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
			log.Printf("[INFO] user %s already exists, skipped", in.Email)
			continue
		}

		u := model.UserModel{ID: in.ID, UserName: in.UserName, Email: in.Email, Role: in.Role}
		if studioID != "" {
			u.StudioID = &studioID
		}
		if err := db.Create(&u).Error; err != nil {
			return inserted, errors.Wrapf(err, "insert user %s", in.Email)
		}
		inserted++
	}
	log.Printf("[INFO] seeded %d users", inserted)
	return inserted, nil
}
