package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/storage"
)

type enrollmentFlatFile struct {
	table  *storage.Table[*models.Enrollment]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newEnrollmentFlatFile(dataDir string, logger *slog.Logger) *enrollmentFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, enrollmentsFile),
		"enrollments",
		"id,student_id,course_id,total_fee",
		enrollmentCodec(),
		logger,
	)
	return &enrollmentFlatFile{
		table:  table,
		alloc:  storage.NewPrefixAllocator(enrollmentPrefix, enrollmentBase, tableIDs(table, func(e *models.Enrollment) string { return e.ID })),
		logger: logger,
	}
}

func (r *enrollmentFlatFile) Create(ctx context.Context, enrollment *models.Enrollment) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	enrollment.ID = id
	return r.table.Append(ctx, enrollment)
}

func (r *enrollmentFlatFile) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollments, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("enrollment %s: %w", id, repositories.ErrNotFound)
}

func (r *enrollmentFlatFile) List(ctx context.Context) ([]*models.Enrollment, error) {
	return r.table.Scan(ctx)
}

func (r *enrollmentFlatFile) ListByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	enrollments, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Enrollment
	for _, e := range enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *enrollmentFlatFile) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	enrollments, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Enrollment
	for _, e := range enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *enrollmentFlatFile) CountByCourse(ctx context.Context, courseID string) (int, error) {
	enrollments, err := r.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return len(enrollments), nil
}

func (r *enrollmentFlatFile) Delete(ctx context.Context, id string) (bool, error) {
	return r.table.Delete(ctx, func(e *models.Enrollment) bool { return e.ID == id })
}

func (r *enrollmentFlatFile) DeleteByCourse(ctx context.Context, courseID string) (bool, error) {
	return r.table.Delete(ctx, func(e *models.Enrollment) bool { return e.CourseID == courseID })
}
