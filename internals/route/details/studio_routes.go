package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"danceflow_backend/internals/features/notifications/email"
	AttendanceRoute "danceflow_backend/internals/features/studio/attendance/route"
	attendanceService "danceflow_backend/internals/features/studio/attendance/service"
	ClassRoute "danceflow_backend/internals/features/studio/classes/route"
	classService "danceflow_backend/internals/features/studio/classes/service"
	EnrollmentRoute "danceflow_backend/internals/features/studio/enrollments/route"
	enrollmentService "danceflow_backend/internals/features/studio/enrollments/service"
	RentalRoute "danceflow_backend/internals/features/studio/rentals/route"
	rentalService "danceflow_backend/internals/features/studio/rentals/service"
)

func StudioPublicRoutes(r fiber.Router, db *gorm.DB, mailer email.Enqueuer) {
	ClassRoute.ClassPublicRoutes(r, classService.NewClassService(db, mailer))
	RentalRoute.RentalPublicRoutes(r, rentalService.NewStudioRentalService(db, nil))
}

func StudioUserRoutes(r fiber.Router, db *gorm.DB, mailer email.Enqueuer) {
	EnrollmentRoute.EnrollmentUserRoutes(r, enrollmentService.NewEnrollmentService(db))
	AttendanceRoute.AttendanceUserRoutes(r, attendanceService.NewAttendanceService(db, nil))
	RentalRoute.RentalUserRoutes(r, rentalService.NewStudioRentalService(db, mailer))
}

func StudioAdminRoutes(r fiber.Router, db *gorm.DB, mailer email.Enqueuer) {
	ClassRoute.ClassAdminRoutes(r, classService.NewClassService(db, mailer))
	EnrollmentRoute.EnrollmentAdminRoutes(r, enrollmentService.NewEnrollmentService(db))
	AttendanceRoute.AttendanceAdminRoutes(r, attendanceService.NewAttendanceService(db, mailer))
	RentalRoute.RentalAdminRoutes(r, rentalService.NewStudioRentalService(db, mailer))
}
