package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"danceflow_backend/internals/constants"
	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/attendance/model"
	classModel "danceflow_backend/internals/features/studio/classes/model"
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

func seed(t *testing.T) (*gorm.DB, *AttendanceService, *memMailer) {
	t.Helper()
	db := testutil.OpenDB(t, &classModel.ClassModel{}, &userModel.UserModel{}, &model.ClassAttendanceModel{})
	teacher := "t1"
	require.NoError(t, db.Create(&classModel.ClassModel{
		ClassID: "ballet", ClassName: "Intro to Ballet", ClassStyle: classModel.StyleBallet,
		ClassLevel: classModel.LevelBeginner, ClassCapacity: 10, ClassEnrolled: 2,
		ClassEnrolledStudents: []string{"s1", "s2"}, ClassPriceCents: 5000, ClassTeacherID: &teacher,
	}).Error)
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, db.Create(&userModel.UserModel{ID: id, UserName: id, Email: id + "@example.com"}).Error)
	}
	mail := &memMailer{}
	return db, NewAttendanceService(db, mail), mail
}

func TestMarkAttendance(t *testing.T) {
	_, svc, mail := seed(t)
	ctx := context.Background()
	actor := Actor{UserID: "t1", Role: constants.RoleTeacher}

	rec, enrolled, err := svc.Mark(ctx, actor, "ballet", "2026-03-02", []string{"s1", "s1", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, []string(rec.ClassAttendancePresentStudents))
	assert.ElementsMatch(t, []string{"s1", "s2"}, enrolled)

	require.Len(t, mail.msgs, 2)
	byTo := map[string]string{}
	for _, m := range mail.msgs {
		byTo[m.To.Address] = m.Text
	}
	assert.Contains(t, byTo["s1@example.com"], "marked as present")
	assert.Contains(t, byTo["s2@example.com"], "marked as absent")

	// upsert: tanggal yang sama ditimpa
	rec, _, err = svc.Mark(ctx, actor, "ballet", "2026-03-02", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Len(t, rec.ClassAttendancePresentStudents, 2)

	rows, total, err := svc.List(ctx, "", "ballet", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, rows, 1)
}

func TestMarkAttendanceRejects(t *testing.T) {
	_, svc, mail := seed(t)
	ctx := context.Background()
	admin := Actor{UserID: "a1", Role: constants.RoleAdmin}

	_, _, err := svc.Mark(ctx, admin, "ballet", "2026-03-02", []string{"s1", "s3"})
	var ne *NotEnrolledError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, []string{"s3"}, ne.UserIDs)

	_, _, err = svc.Mark(ctx, admin, "ballet", "02/03/2026", nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, _, err = svc.Mark(ctx, admin, "nope", "2026-03-02", nil)
	assert.ErrorIs(t, err, ErrClassNotFound)

	_, _, err = svc.Mark(ctx, Actor{UserID: "t2", Role: constants.RoleTeacher}, "ballet", "2026-03-02", nil)
	assert.ErrorIs(t, err, ErrNotClassTeacher)

	_, err = svc.Get(ctx, "", "ballet", "2026-03-02")
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
	assert.Empty(t, mail.msgs)
}

func TestMarkAttendanceUnassignedClassIsAdminOnly(t *testing.T) {
	db, svc, _ := seed(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&classModel.ClassModel{
		ClassID: "open-jazz", ClassName: "Open Jazz", ClassStyle: classModel.StyleJazz,
		ClassLevel: classModel.LevelBeginner, ClassCapacity: 10, ClassEnrolled: 1,
		ClassEnrolledStudents: []string{"s1"},
	}).Error)

	_, _, err := svc.Mark(ctx, Actor{UserID: "t1", Role: constants.RoleTeacher}, "open-jazz", "2026-03-02", []string{"s1"})
	assert.ErrorIs(t, err, ErrNotClassTeacher)

	rec, _, err := svc.Mark(ctx, Actor{UserID: "a1", Role: constants.RoleAdmin}, "open-jazz", "2026-03-02", []string{"s1"})
	require.NoError(t, err)
	assert.True(t, rec.IsPresent("s1"))
}
