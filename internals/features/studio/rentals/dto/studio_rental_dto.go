package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"danceflow_backend/internals/features/studio/rentals/model"
)

type CreateRentalRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	Purpose   string `json:"purpose" validate:"required,max=500"`
}

func (r *CreateRentalRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Purpose = strings.TrimSpace(r.Purpose)
}

type RentalResponse struct {
	ID        uuid.UUID          `json:"id"`
	StudioID  string             `json:"studio_id"`
	UserID    string             `json:"user_id"`
	UserName  string             `json:"user_name,omitempty"`
	Date      string             `json:"date"`
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Purpose   string             `json:"purpose"`
	Status    model.RentalStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func FromModel(m *model.StudioRentalModel) RentalResponse {
	return RentalResponse{
		ID:        m.RentalID,
		StudioID:  m.RentalStudioID,
		UserID:    m.RentalUserID,
		UserName:  m.RentalUserName,
		Date:      m.RentalDate,
		StartTime: m.RentalStart,
		EndTime:   m.RentalEnd,
		Purpose:   m.RentalPurpose,
		Status:    m.RentalStatus,
		CreatedAt: m.RentalCreatedAt,
		UpdatedAt: m.RentalUpdatedAt,
	}
}

func FromModels(rows []model.StudioRentalModel) []RentalResponse {
	out := make([]RentalResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// BookedSlot = tampilan publik ketersediaan; tanpa data pemesan.
type BookedSlot struct {
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Status    model.RentalStatus `json:"status"`
}

type AvailabilityResponse struct {
	StudioID  string       `json:"studio_id"`
	Date      string       `json:"date"`
	OpenTime  string       `json:"open_time"`
	CloseTime string       `json:"close_time"`
	Booked    []BookedSlot `json:"booked"`
	FreeSlots []string     `json:"free_slots"`
}
