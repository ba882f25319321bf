package repositories

import (
	"context"

	"github.com/CCMS-2025/center-service/internal/models"
)

type AttendanceRepository interface {
	// Create allocates the next attendance id and appends one record per
	// marking event. Attendance is append-only.
	Create(ctx context.Context, record *models.AttendanceRecord) error

	ListByCourse(ctx context.Context, courseID string) ([]*models.AttendanceRecord, error)
	ListByStudentCourse(ctx context.Context, studentID, courseID string) ([]*models.AttendanceRecord, error)
}

type RequestRepository interface {
	// Create allocates the next request id and appends the record with
	// status Pending.
	Create(ctx context.Context, request *models.EnrollmentRequest) error

	GetByID(ctx context.Context, id string) (*models.EnrollmentRequest, error)
	List(ctx context.Context) ([]*models.EnrollmentRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.EnrollmentRequest, error)
	ListPending(ctx context.Context) ([]*models.EnrollmentRequest, error)

	// UpdateStatus rewrites the request's status in place. No change is
	// reported when the id does not exist or already carries the status.
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) (bool, error)
}
