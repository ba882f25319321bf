package repositories

import (
	"context"

	"github.com/CCMS-2025/center-service/internal/models"
)

// CascadePolicy decides what a course delete does with enrollments that
// reference the course. Nothing at file level enforces the reference, so
// the policy is the only guard against dangling rows.
type CascadePolicy string

const (
	// CascadeKeep leaves dependent enrollments dangling (source parity).
	CascadeKeep CascadePolicy = "keep"
	// CascadeDelete drops dependent enrollments together with the course.
	CascadeDelete CascadePolicy = "cascade"
	// CascadeBlock refuses the delete while enrollments reference the course.
	CascadeBlock CascadePolicy = "block"
)

// ErrCourseInUse is returned by Delete under CascadeBlock when enrollments
// still reference the course.
type ErrCourseInUse struct {
	CourseID    string
	Enrollments int
}

func (e *ErrCourseInUse) Error() string {
	return "course " + e.CourseID + " still has enrollments"
}

type CourseRepository interface {
	// Create allocates the next course id and appends the record.
	Create(ctx context.Context, course *models.Course) error

	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByTutor(ctx context.Context, tutorID string) ([]*models.Course, error)

	Update(ctx context.Context, course *models.Course) (bool, error)

	// Delete applies the configured CascadePolicy.
	Delete(ctx context.Context, id string) (bool, error)
}
