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

type courseFlatFile struct {
	table       *storage.Table[*models.Course]
	alloc       storage.IDAllocator
	cascade     repositories.CascadePolicy
	enrollments *enrollmentFlatFile
	logger      *slog.Logger
}

func newCourseFlatFile(dataDir string, cascade repositories.CascadePolicy, enrollments *enrollmentFlatFile, logger *slog.Logger) *courseFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, coursesFile),
		"courses",
		"id,name,tutor_id,level,subject,fee",
		courseCodec(),
		logger,
	)
	return &courseFlatFile{
		table:       table,
		alloc:       storage.NewPrefixAllocator(coursePrefix, courseBase, tableIDs(table, func(c *models.Course) string { return c.ID })),
		cascade:     cascade,
		enrollments: enrollments,
		logger:      logger,
	}
}

func (r *courseFlatFile) Create(ctx context.Context, course *models.Course) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	course.ID = id
	return r.table.Append(ctx, course)
}

func (r *courseFlatFile) GetByID(ctx context.Context, id string) (*models.Course, error) {
	courses, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", id, repositories.ErrNotFound)
}

func (r *courseFlatFile) List(ctx context.Context) ([]*models.Course, error) {
	return r.table.Scan(ctx)
}

func (r *courseFlatFile) ListByTutor(ctx context.Context, tutorID string) ([]*models.Course, error) {
	courses, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var owned []*models.Course
	for _, c := range courses {
		if c.TutorID == tutorID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

func (r *courseFlatFile) Update(ctx context.Context, course *models.Course) (bool, error) {
	return r.table.Update(ctx,
		func(c *models.Course) bool { return c.ID == course.ID },
		func(*models.Course) *models.Course { return course },
	)
}

// Delete applies the configured cascade policy before dropping the course
// row. Under CascadeKeep dependent enrollments are left dangling.
func (r *courseFlatFile) Delete(ctx context.Context, id string) (bool, error) {
	switch r.cascade {
	case repositories.CascadeBlock:
		n, err := r.enrollments.CountByCourse(ctx, id)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, &repositories.ErrCourseInUse{CourseID: id, Enrollments: n}
		}
	case repositories.CascadeDelete:
		if _, err := r.enrollments.DeleteByCourse(ctx, id); err != nil {
			return false, err
		}
	}
	changed, err := r.table.Delete(ctx, func(c *models.Course) bool { return c.ID == id })
	if err != nil {
		return false, err
	}
	if changed && r.cascade == repositories.CascadeKeep {
		r.logger.Warn("course deleted, dependent enrollments kept", "course_id", id)
	}
	return changed, nil
}

// tableIDs adapts a table scan into the id lister the prefix allocator wants.
func tableIDs[T any](table *storage.Table[T], id func(T) string) func() ([]string, error) {
	return func() ([]string, error) {
		records, err := table.Scan(context.Background())
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(records))
		for _, rec := range records {
			ids = append(ids, id(rec))
		}
		return ids, nil
	}
}
