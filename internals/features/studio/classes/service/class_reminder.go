package service

import (
	"context"
	"errors"
	"net/mail"

	"gorm.io/gorm"

	"danceflow_backend/internals/features/notifications/email"
	"danceflow_backend/internals/features/studio/classes/model"
	userModel "danceflow_backend/internals/features/users/user/model"
)

var ErrMailerDisabled = errors.New("mailer is not configured")

// SendReminders mengirim email classReminder ke semua siswa aktif kelas.
// Return jumlah email yang diterima antrian.
func (s *ClassService) SendReminders(ctx context.Context, studioID, classID, date, at string) (int, error) {
	if s.Mailer == nil {
		return 0, ErrMailerDisabled
	}
	var c model.ClassModel
	if err := s.scoped(ctx, studioID).Where("class_id = ?", classID).Take(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrClassNotFound
		}
		return 0, err
	}
	if len(c.ClassEnrolledStudents) == 0 {
		return 0, nil
	}

	var users []userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id IN ?", []string(c.ClassEnrolledStudents)).Find(&users).Error; err != nil {
		return 0, err
	}
	msgs := make([]email.Message, 0, len(users))
	for _, u := range users {
		m, err := email.Render(email.TplClassReminder, mail.Address{Name: u.UserName, Address: u.Email}, email.TemplateData{
			ClassName: c.ClassName,
			Date:      date,
			Time:      at,
		})
		if err != nil {
			return 0, err
		}
		msgs = append(msgs, m)
	}
	return s.Mailer.Enqueue(msgs...), nil
}
