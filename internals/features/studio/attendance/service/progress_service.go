package service

import (
	"context"
	"math"

	"danceflow_backend/internals/features/studio/attendance/dto"
	"danceflow_backend/internals/features/studio/attendance/model"
	classModel "danceflow_backend/internals/features/studio/classes/model"
	enrollmentModel "danceflow_backend/internals/features/studio/enrollments/model"
)

// rate dalam persen, dua desimal; 0 kalau belum ada sesi tercatat
func attendanceRate(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*10000) / 100
}

func (s *AttendanceService) records(ctx context.Context, classIDs []string) (map[string][]model.ClassAttendanceModel, error) {
	out := make(map[string][]model.ClassAttendanceModel, len(classIDs))
	if len(classIDs) == 0 {
		return out, nil
	}
	var rows []model.ClassAttendanceModel
	if err := s.DB.WithContext(ctx).
		Where("class_attendance_class_id IN ?", classIDs).
		Order("class_attendance_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ClassAttendanceClassID] = append(out[r.ClassAttendanceClassID], r)
	}
	return out, nil
}

// Progress: rate kehadiran + riwayat per kelas yang sedang diikuti siswa (enrollment active).
func (s *AttendanceService) Progress(ctx context.Context, userID string) ([]dto.ClassProgress, error) {
	var classIDs []string
	if err := s.DB.WithContext(ctx).Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_status = ?", userID, enrollmentModel.EnrollmentStatusActive).
		Order("enrollment_enrolled_at ASC").
		Pluck("enrollment_class_id", &classIDs).Error; err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return []dto.ClassProgress{}, nil
	}

	var classes []classModel.ClassModel
	if err := s.DB.WithContext(ctx).Where("class_id IN ?", classIDs).Find(&classes).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(classes))
	for _, c := range classes {
		names[c.ClassID] = c.ClassName
	}
	byClass, err := s.records(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClassProgress, 0, len(classIDs))
	for _, id := range classIDs {
		name, ok := names[id]
		if !ok {
			continue
		}
		p := dto.ClassProgress{ClassID: id, ClassName: name, History: []dto.AttendanceEntry{}}
		for i := range byClass[id] {
			present := byClass[id][i].IsPresent(userID)
			if present {
				p.Attended++
			}
			p.History = append(p.History, dto.AttendanceEntry{Date: byClass[id][i].ClassAttendanceDate, Present: present})
		}
		p.TotalSessions = len(p.History)
		p.AttendanceRate = attendanceRate(p.Attended, p.TotalSessions)
		out = append(out, p)
	}
	return out, nil
}

// ClassReport: rate kehadiran tiap siswa terdaftar di satu kelas (untuk staff).
func (s *AttendanceService) ClassReport(ctx context.Context, studioID, classID string) (*dto.ClassAttendanceReport, error) {
	cls, err := s.loadClass(ctx, studioID, classID)
	if err != nil {
		return nil, err
	}
	byClass, err := s.records(ctx, []string{cls.ClassID})
	if err != nil {
		return nil, err
	}
	rows := byClass[cls.ClassID]

	rep := &dto.ClassAttendanceReport{
		ClassID:       cls.ClassID,
		ClassName:     cls.ClassName,
		TotalSessions: len(rows),
		Students:      make([]dto.StudentAttendance, 0, len(cls.ClassEnrolledStudents)),
	}
	for _, uid := range cls.ClassEnrolledStudents {
		st := dto.StudentAttendance{UserID: uid}
		for i := range rows {
			if rows[i].IsPresent(uid) {
				st.Attended++
			}
		}
		st.AttendanceRate = attendanceRate(st.Attended, len(rows))
		rep.Students = append(rep.Students, st)
	}
	return rep, nil
}
