package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/users/user/model"
	"danceflow_backend/internals/middlewares/auth"
)

var ErrInvalidRole = errors.New("invalid role")

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// ResolveRole dipakai AuthJWTOpts.RoleResolver: role di DB adalah sumber kebenaran.
func (s *UserService) ResolveRole(ctx context.Context, userID string) (string, string, error) {
	var u model.UserModel
	err := s.DB.WithContext(ctx).Select("id", "role", "studio_id").Where("id = ?", userID).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", auth.ErrUnknownUser
	}
	if err != nil {
		return "", "", err
	}
	studio := ""
	if u.StudioID != nil {
		studio = *u.StudioID
	}
	return u.Role, studio, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.UserModel, error) {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Touch memperbarui last_active_at.
func (s *UserService) Touch(ctx context.Context, id string, at time.Time) error {
	return s.DB.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_active_at", at).Error
}

// UpdateRole mengganti role; studioID non-kosong membatasi ke tenant yang sama.
func (s *UserService) UpdateRole(ctx context.Context, studioID, userID, role string) (*model.UserModel, error) {
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	q := s.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", userID)
	if studioID != "" {
		q = q.Where("studio_id = ?", studioID)
	}
	res := q.Updates(map[string]any{"role": role, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetByID(ctx, userID)
}
