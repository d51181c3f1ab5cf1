package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"danceflow_backend/internals/constants"
	database "danceflow_backend/internals/databases"
	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/rentals/dto"
	"danceflow_backend/internals/features/studio/rentals/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	"danceflow_backend/internals/helpers/applog"
)

const (
	DefaultStudioID = "main-studio"
	OpenTime        = "08:00"
	CloseTime       = "22:00"
	SlotMinutes     = 30

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrSlotTaken         = errors.New("this time slot is already booked")
	ErrInvalidSlot       = errors.New("time slot must be on a 30 minute boundary between 08:00 and 22:00, end after start")
	ErrInvalidDate       = errors.New("date must be formatted as YYYY-MM-DD")
	ErrRentalInPast      = errors.New("cannot book a date in the past")
	ErrInvalidTransition = errors.New("rental cannot change to that status")
	ErrNotRentalOwner    = errors.New("only the booker or an admin can cancel this rental")
)

// Booker = user yang memesan / mengubah booking.
type Booker struct {
	UserID   string
	Role     string
	StudioID string
}

func (b Booker) studio() string {
	if b.StudioID == "" {
		return DefaultStudioID
	}
	return b.StudioID
}

type StudioRentalService struct {
	DB     *gorm.DB
	Mailer email.Enqueuer

	now func() time.Time
}

func NewStudioRentalService(db *gorm.DB, mailer email.Enqueuer) *StudioRentalService {
	return &StudioRentalService{DB: db, Mailer: mailer, now: time.Now}
}

func normalizeDate(raw string) (string, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	return d.Format(dateLayout), nil
}

// validSlot: jam buka 08:00-22:00, kelipatan 30 menit, end > start.
func validSlot(start, end string) (string, string, error) {
	s, err := time.Parse(timeLayout, start)
	if err != nil {
		return "", "", ErrInvalidSlot
	}
	e, err := time.Parse(timeLayout, end)
	if err != nil {
		return "", "", ErrInvalidSlot
	}
	start, end = s.Format(timeLayout), e.Format(timeLayout)
	if s.Minute()%SlotMinutes != 0 || e.Minute()%SlotMinutes != 0 {
		return "", "", ErrInvalidSlot
	}
	if start >= end || start < OpenTime || end > CloseTime {
		return "", "", ErrInvalidSlot
	}
	return start, end, nil
}

// lockDay mengunci row (studio, tanggal); di Postgres update ini menahan row lock sampai commit.
func lockDay(tx *gorm.DB, studioID, date string) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rental_day_studio_id"}, {Name: "rental_day_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"rental_day_version": gorm.Expr("studio_rental_days.rental_day_version + 1"),
		}),
	}).Create(&model.StudioRentalDayModel{RentalDayStudioID: studioID, RentalDayDate: date}).Error
}

func (s *StudioRentalService) blocking(tx *gorm.DB, studioID, date string) ([]model.StudioRentalModel, error) {
	var rows []model.StudioRentalModel
	err := tx.Where("rental_studio_id = ? AND rental_date = ? AND rental_status <> ?",
		studioID, date, model.RentalStatusCancelled).
		Order("rental_start_time ASC").
		Find(&rows).Error
	return rows, err
}

// Create memesan slot (status pending). Booking pending/confirmed lain yang beririsan
// membuat permintaan ditolak dengan ErrSlotTaken.
func (s *StudioRentalService) Create(ctx context.Context, b Booker, req dto.CreateRentalRequest) (*model.StudioRentalModel, error) {
	day, err := normalizeDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, end, err := validSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if day < s.now().Format(dateLayout) {
		return nil, ErrRentalInPast
	}

	var name string
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", b.UserID).Limit(1).Pluck("user_name", &name).Error; err != nil {
		return nil, err
	}

	row := model.StudioRentalModel{
		RentalStudioID: b.studio(),
		RentalUserID:   b.UserID,
		RentalUserName: name,
		RentalDate:     day,
		RentalStart:    start,
		RentalEnd:      end,
		RentalPurpose:  req.Purpose,
		RentalStatus:   model.RentalStatusPending,
	}
	err = database.WithTxRetry(ctx, s.DB, database.DefaultTxAttempts, func(tx *gorm.DB) error {
		if err := lockDay(tx, row.RentalStudioID, day); err != nil {
			return err
		}
		taken, err := s.blocking(tx, row.RentalStudioID, day)
		if err != nil {
			return err
		}
		for i := range taken {
			if taken[i].Blocks() && taken[i].Overlaps(start, end) {
				return ErrSlotTaken
			}
		}
		row.RentalID = uuid.New()
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	applog.Info("studio rental requested", "rental_id", row.RentalID.String(), "date", day, "start", start, "end", end)
	return &row, nil
}

func (s *StudioRentalService) get(tx *gorm.DB, studioID string, id uuid.UUID) (*model.StudioRentalModel, error) {
	var m model.StudioRentalModel
	q := tx.Where("rental_id = ?", id)
	if studioID != "" {
		q = q.Where("rental_studio_id = ?", studioID)
	}
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return &m, nil
}

// transition: pending → confirmed, pending|confirmed → cancelled.
func (s *StudioRentalService) transition(ctx context.Context, studioID string, id uuid.UUID, to model.RentalStatus, allow func(*model.StudioRentalModel) error) (*model.StudioRentalModel, error) {
	var out *model.StudioRentalModel
	err := database.WithTxRetry(ctx, s.DB, database.DefaultTxAttempts, func(tx *gorm.DB) error {
		m, err := s.get(tx, studioID, id)
		if err != nil {
			return err
		}
		if err := allow(m); err != nil {
			return err
		}
		from := m.RentalStatus
		switch {
		case to == model.RentalStatusConfirmed && from != model.RentalStatusPending,
			to == model.RentalStatusCancelled && from == model.RentalStatusCancelled:
			return ErrInvalidTransition
		}
		if err := lockDay(tx, m.RentalStudioID, m.RentalDate); err != nil {
			return err
		}

		now := s.now()
		upd := map[string]any{"rental_status": to, "rental_updated_at": now}
		if to == model.RentalStatusCancelled {
			upd["rental_cancelled_at"] = now
		}
		res := tx.Model(&model.StudioRentalModel{}).
			Where("rental_id = ? AND rental_status = ?", m.RentalID, from).
			Updates(upd)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrTxConflict
		}
		m.RentalStatus = to
		m.RentalUpdatedAt = now
		if to == model.RentalStatusCancelled {
			m.RentalCancelledAt = &now
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	applog.Info("studio rental updated", "rental_id", id.String(), "status", string(to))
	s.notify(ctx, out)
	return out, nil
}

// Confirm: admin menyetujui booking pending.
func (s *StudioRentalService) Confirm(ctx context.Context, studioID string, id uuid.UUID) (*model.StudioRentalModel, error) {
	return s.transition(ctx, studioID, id, model.RentalStatusConfirmed, func(*model.StudioRentalModel) error { return nil })
}

// Cancel: pemesan sendiri atau admin.
func (s *StudioRentalService) Cancel(ctx context.Context, b Booker, id uuid.UUID) (*model.StudioRentalModel, error) {
	scope := ""
	if b.Role == constants.RoleAdmin {
		scope = b.StudioID
	}
	return s.transition(ctx, scope, id, model.RentalStatusCancelled, func(m *model.StudioRentalModel) error {
		if b.Role != constants.RoleAdmin && m.RentalUserID != b.UserID {
			return ErrNotRentalOwner
		}
		return nil
	})
}

// Availability: slot terpakai + slot 30 menit yang masih kosong pada satu tanggal.
func (s *StudioRentalService) Availability(ctx context.Context, studioID, date string) (*dto.AvailabilityResponse, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if studioID == "" {
		studioID = DefaultStudioID
	}
	taken, err := s.blocking(s.DB.WithContext(ctx), studioID, day)
	if err != nil {
		return nil, err
	}
	out := &dto.AvailabilityResponse{
		StudioID:  studioID,
		Date:      day,
		OpenTime:  OpenTime,
		CloseTime: CloseTime,
		Booked:    make([]dto.BookedSlot, 0, len(taken)),
		FreeSlots: []string{},
	}
	for _, r := range taken {
		out.Booked = append(out.Booked, dto.BookedSlot{StartTime: r.RentalStart, EndTime: r.RentalEnd, Status: r.RentalStatus})
	}
	open, _ := time.Parse(timeLayout, OpenTime)
	closeAt, _ := time.Parse(timeLayout, CloseTime)
	for t := open; t.Before(closeAt); t = t.Add(SlotMinutes * time.Minute) {
		start, end := t.Format(timeLayout), t.Add(SlotMinutes*time.Minute).Format(timeLayout)
		free := true
		for i := range taken {
			if taken[i].Overlaps(start, end) {
				free = false
				break
			}
		}
		if free {
			out.FreeSlots = append(out.FreeSlots, start)
		}
	}
	return out, nil
}

type ListFilter struct {
	StudioID string
	UserID   string
	Status   string
	Date     string
	Offset   int
	Limit    int
}

func (s *StudioRentalService) List(ctx context.Context, f ListFilter) ([]model.StudioRentalModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.StudioRentalModel{})
	if f.StudioID != "" {
		q = q.Where("rental_studio_id = ?", f.StudioID)
	}
	if f.UserID != "" {
		q = q.Where("rental_user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("rental_status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("rental_date = ?", f.Date)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.StudioRentalModel
	if err := q.Order("rental_date DESC, rental_start_time ASC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// notify: best effort ke pemesan.
func (s *StudioRentalService) notify(ctx context.Context, m *model.StudioRentalModel) {
	if s.Mailer == nil {
		return
	}
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", m.RentalUserID).Take(&u).Error; err != nil {
		applog.Warn("rental email skipped, booker not found", "rental_id", m.RentalID.String())
		return
	}
	msg, err := email.Render(email.TplRentalUpdate, mail.Address{Name: u.UserName, Address: u.Email}, email.TemplateData{
		Date:   m.RentalDate,
		Time:   fmt.Sprintf("%s-%s", m.RentalStart, m.RentalEnd),
		Status: string(m.RentalStatus),
	})
	if err != nil {
		applog.Error("render rental email failed", err, "rental_id", m.RentalID.String())
		return
	}
	if s.Mailer.Enqueue(msg) == 0 {
		applog.Warn("email queue full, rental email dropped", "rental_id", m.RentalID.String())
	}
}
