package flatfile

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/storage"
)

type attendanceFlatFile struct {
	table  *storage.Table[*models.AttendanceRecord]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newAttendanceFlatFile(dataDir string, logger *slog.Logger) *attendanceFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, attendanceFile),
		"attendance",
		"id,student_id,course_id,date,status",
		attendanceCodec(),
		logger,
	)
	return &attendanceFlatFile{
		table:  table,
		alloc:  storage.NewPrefixAllocator(attendancePrefix, attendanceBase, tableIDs(table, func(a *models.AttendanceRecord) string { return a.ID })),
		logger: logger,
	}
}

func (r *attendanceFlatFile) Create(ctx context.Context, record *models.AttendanceRecord) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	record.ID = id
	return r.table.Append(ctx, record)
}

func (r *attendanceFlatFile) ListByCourse(ctx context.Context, courseID string) ([]*models.AttendanceRecord, error) {
	records, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.AttendanceRecord
	for _, a := range records {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *attendanceFlatFile) ListByStudentCourse(ctx context.Context, studentID, courseID string) ([]*models.AttendanceRecord, error) {
	records, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.AttendanceRecord
	for _, a := range records {
		if a.StudentID == studentID && a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}
