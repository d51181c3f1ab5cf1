package model

import (
	"time"
)

// UserModel merepresentasikan tabel users di database.
// ID berasal dari identity provider (klaim "sub"), bukan di-generate di sini.
type UserModel struct {
	ID           string     `gorm:"column:id;primaryKey;size:128" json:"id"`
	StudioID     *string    `gorm:"column:studio_id;size:64;index" json:"studio_id,omitempty"`
	UserName     string     `gorm:"column:user_name;size:100;not null" json:"user_name"`
	Email        string     `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Role         string     `gorm:"column:role;size:20;not null;default:student" json:"role"`
	LastActiveAt *time.Time `gorm:"column:last_active_at" json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}
