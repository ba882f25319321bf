package repositories

import (
	"context"
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
)

type EnrollmentRepository interface {
	// Create allocates the next enrollment id and appends the record.
	// The caller sets TotalFee from the course fee at enrollment time.
	Create(ctx context.Context, enrollment *models.Enrollment) error

	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	List(ctx context.Context) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)

	Delete(ctx context.Context, id string) (bool, error)
	DeleteByCourse(ctx context.Context, courseID string) (bool, error)
}

// PaymentFilters narrows payment scans. Nil/zero fields are ignored.
type PaymentFilters struct {
	EnrollmentID string
	From         time.Time
	To           time.Time
}

type PaymentRepository interface {
	// Create allocates the next payment id and appends the record.
	Create(ctx context.Context, payment *models.Payment) error

	GetByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, filters PaymentFilters) ([]*models.Payment, error)
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]*models.Payment, error)
}
