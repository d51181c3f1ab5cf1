package model

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

/*
studio_rentals = booking ruang studio per slot 30 menit
  - jam "HH:mm" (zero-padded) sehingga perbandingan string = perbandingan waktu
  - booking pending + confirmed memblok slot; cancelled tidak
*/
type StudioRentalModel struct {
	RentalID       uuid.UUID    `gorm:"column:rental_id;primaryKey" json:"rental_id"`
	RentalStudioID string       `gorm:"column:rental_studio_id;size:64;not null;index:idx_rentals_studio_date" json:"rental_studio_id"`
	RentalUserID   string       `gorm:"column:rental_user_id;size:128;not null;index" json:"rental_user_id"`
	RentalUserName string       `gorm:"column:rental_user_name;size:100" json:"rental_user_name"`
	RentalDate     string       `gorm:"column:rental_date;size:10;not null;index:idx_rentals_studio_date" json:"rental_date"`
	RentalStart    string       `gorm:"column:rental_start_time;size:5;not null" json:"rental_start_time"`
	RentalEnd      string       `gorm:"column:rental_end_time;size:5;not null" json:"rental_end_time"`
	RentalPurpose  string       `gorm:"column:rental_purpose;type:text;not null" json:"rental_purpose"`
	RentalStatus   RentalStatus `gorm:"column:rental_status;size:16;not null;default:pending" json:"rental_status"`

	RentalCancelledAt *time.Time `gorm:"column:rental_cancelled_at" json:"rental_cancelled_at,omitempty"`
	RentalCreatedAt   time.Time  `gorm:"column:rental_created_at;autoCreateTime" json:"rental_created_at"`
	RentalUpdatedAt   time.Time  `gorm:"column:rental_updated_at;autoUpdateTime" json:"rental_updated_at"`
}

func (StudioRentalModel) TableName() string {
	return "studio_rentals"
}

// Overlaps: [start, end) beririsan.
func (m *StudioRentalModel) Overlaps(start, end string) bool {
	return m.RentalStart < end && m.RentalEnd > start
}

func (m *StudioRentalModel) Blocks() bool {
	return m.RentalStatus != RentalStatusCancelled
}

// studio_rental_days: satu row per (studio, tanggal), dikunci selama transaksi booking
// supaya dua booking di hari yang sama tidak lolos cek bentrok bersamaan.
type StudioRentalDayModel struct {
	RentalDayStudioID string `gorm:"column:rental_day_studio_id;primaryKey;size:64"`
	RentalDayDate     string `gorm:"column:rental_day_date;primaryKey;size:10"`
	RentalDayVersion  int64  `gorm:"column:rental_day_version;not null;default:0"`
}

func (StudioRentalDayModel) TableName() string {
	return "studio_rental_days"
}
