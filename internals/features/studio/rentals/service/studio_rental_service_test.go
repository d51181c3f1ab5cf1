package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/rentals/dto"
	"danceflow_backend/internals/features/studio/rentals/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	"danceflow_backend/internals/testutil"
)

type memMailer struct {
	mu   sync.Mutex
	msgs []email.Message
}

func (m *memMailer) Enqueue(msgs ...email.Message) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msgs...)
	return len(msgs)
}

var (
	alice = Booker{UserID: "u1", Role: constants.RoleStudent}
	bob   = Booker{UserID: "u2", Role: constants.RoleStudent}
	admin = Booker{UserID: "a1", Role: constants.RoleAdmin, StudioID: DefaultStudioID}
)

func seed(t *testing.T) (*gorm.DB, *StudioRentalService, *memMailer) {
	t.Helper()
	db := testutil.OpenDB(t, &userModel.UserModel{}, &model.StudioRentalModel{}, &model.StudioRentalDayModel{})
	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, db.Create(&userModel.UserModel{ID: id, UserName: "name-" + id, Email: id + "@example.com"}).Error)
	}
	mail := &memMailer{}
	svc := NewStudioRentalService(db, mail)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return db, svc, mail
}

func book(date, start, end string) dto.CreateRentalRequest {
	return dto.CreateRentalRequest{Date: date, StartTime: start, EndTime: end, Purpose: "rehearsal"}
}

func TestCreateRental(t *testing.T) {
	_, svc, _ := seed(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, alice, book("2026-03-02", "10:00", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, model.RentalStatusPending, r.RentalStatus)
	assert.Equal(t, DefaultStudioID, r.RentalStudioID)
	assert.Equal(t, "name-u1", r.RentalUserName)
	assert.NotEqual(t, uuid.Nil, r.RentalID)

	// bersebelahan boleh
	_, err = svc.Create(ctx, bob, book("2026-03-02", "11:30", "12:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, book("2026-03-02", "09:00", "10:00"))
	require.NoError(t, err)
}

func TestCreateRentalConflicts(t *testing.T) {
	db, svc, _ := seed(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, alice, book("2026-03-02", "10:00", "11:00"))
	require.NoError(t, err)

	for _, slot := range [][2]string{{"10:00", "11:00"}, {"10:30", "11:30"}, {"09:30", "10:30"}, {"09:00", "12:00"}} {
		_, err = svc.Create(ctx, bob, book("2026-03-02", slot[0], slot[1]))
		assert.ErrorIs(t, err, ErrSlotTaken, slot)
	}

	// tanggal lain tidak bentrok
	_, err = svc.Create(ctx, bob, book("2026-03-03", "10:00", "11:00"))
	require.NoError(t, err)

	// cancelled melepas slot
	_, err = svc.Cancel(ctx, alice, first.RentalID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, book("2026-03-02", "10:30", "11:30"))
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&model.StudioRentalModel{}).
		Where("rental_date = ? AND rental_status <> ?", "2026-03-02", model.RentalStatusCancelled).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreateRentalValidation(t *testing.T) {
	_, svc, _ := seed(t)
	ctx := context.Background()

	cases := map[string]struct {
		req dto.CreateRentalRequest
		err error
	}{
		"not on boundary": {book("2026-03-02", "10:15", "11:00"), ErrInvalidSlot},
		"end before":      {book("2026-03-02", "11:00", "10:00"), ErrInvalidSlot},
		"zero length":     {book("2026-03-02", "11:00", "11:00"), ErrInvalidSlot},
		"before open":     {book("2026-03-02", "07:30", "09:00"), ErrInvalidSlot},
		"after close":     {book("2026-03-02", "21:30", "22:30"), ErrInvalidSlot},
		"bad time":        {book("2026-03-02", "25:00", "26:00"), ErrInvalidSlot},
		"bad date":        {book("02/03/2026", "10:00", "11:00"), ErrInvalidDate},
		"past":            {book("2026-02-28", "10:00", "11:00"), ErrRentalInPast},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, alice, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	// hari ini masih boleh
	_, err := svc.Create(ctx, alice, book("2026-03-01", "21:30", "22:00"))
	require.NoError(t, err)
}

func TestConfirmAndCancelRental(t *testing.T) {
	_, svc, mail := seed(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, alice, book("2026-03-02", "10:00", "11:00"))
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, DefaultStudioID, r.RentalID)
	require.NoError(t, err)
	assert.Equal(t, model.RentalStatusConfirmed, confirmed.RentalStatus)

	_, err = svc.Confirm(ctx, DefaultStudioID, r.RentalID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// confirmed tetap memblok
	_, err = svc.Create(ctx, bob, book("2026-03-02", "10:30", "11:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, err = svc.Cancel(ctx, bob, r.RentalID)
	assert.ErrorIs(t, err, ErrNotRentalOwner)

	cancelled, err := svc.Cancel(ctx, admin, r.RentalID)
	require.NoError(t, err)
	assert.Equal(t, model.RentalStatusCancelled, cancelled.RentalStatus)
	require.NotNil(t, cancelled.RentalCancelledAt)

	_, err = svc.Cancel(ctx, alice, r.RentalID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Confirm(ctx, DefaultStudioID, r.RentalID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Confirm(ctx, DefaultStudioID, uuid.New())
	assert.ErrorIs(t, err, ErrRentalNotFound)
	_, err = svc.Confirm(ctx, "other-studio", r.RentalID)
	assert.ErrorIs(t, err, ErrRentalNotFound)

	require.Len(t, mail.msgs, 2)
	assert.Equal(t, "u1@example.com", mail.msgs[0].To.Address)
	assert.Contains(t, mail.msgs[0].Subject, "confirmed")
	assert.Contains(t, mail.msgs[1].Subject, "cancelled")
}

func TestRentalAvailability(t *testing.T) {
	_, svc, _ := seed(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, book("2026-03-02", "08:00", "09:00"))
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, bob, book("2026-03-02", "12:00", "13:00"))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, bob, cancelled.RentalID)
	require.NoError(t, err)

	av, err := svc.Availability(ctx, "", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, DefaultStudioID, av.StudioID)
	require.Len(t, av.Booked, 1)
	assert.Equal(t, dto.BookedSlot{StartTime: "08:00", EndTime: "09:00", Status: model.RentalStatusPending}, av.Booked[0])
	// 08:00-22:00 = 28 slot, 2 terpakai
	assert.Len(t, av.FreeSlots, 26)
	assert.Equal(t, "09:00", av.FreeSlots[0])
	assert.Contains(t, av.FreeSlots, "12:00")

	_, err = svc.Availability(ctx, "", "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestListRentals(t *testing.T) {
	_, svc, _ := seed(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, book("2026-03-02", "10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, book("2026-03-03", "10:00", "11:00"))
	require.NoError(t, err)

	rows, total, err := svc.List(ctx, ListFilter{UserID: "u1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].RentalUserID)

	rows, total, err = svc.List(ctx, ListFilter{StudioID: DefaultStudioID, Status: "pending", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "2026-03-03", rows[0].RentalDate)
}
