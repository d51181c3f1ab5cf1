package dto

import (
	"strings"
	"time"

	uModel "danceflow_backend/internals/features/users/user/model"
)

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin teacher student"`
}

func (r *UpdateRoleRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type UserResponse struct {
	ID           string     `json:"id"`
	StudioID     *string    `json:"studio_id,omitempty"`
	UserName     string     `json:"user_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:           u.ID,
		StudioID:     u.StudioID,
		UserName:     u.UserName,
		Email:        u.Email,
		Role:         u.Role,
		LastActiveAt: u.LastActiveAt,
		CreatedAt:    u.CreatedAt,
	}
}
