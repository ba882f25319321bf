package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

// MaxCoursesPerEnrollment caps how many courses one Enroll call may select.
const MaxCoursesPerEnrollment = 3

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger, validator: v}
}

// Enroll creates one enrollment per selected course. Each enrollment
// snapshots the course fee at this moment; later fee changes never alter
// it. Writes happen per course with no rollback: an error partway leaves
// the earlier enrollments in place, and the caller may retry the rest.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest) ([]*models.Enrollment, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("enroll: %w", errs)
	}
	if len(req.CourseIDs) > MaxCoursesPerEnrollment {
		return nil, fmt.Errorf("enroll: at most %d courses per enrollment, got %d", MaxCoursesPerEnrollment, len(req.CourseIDs))
	}

	if _, err := s.repo.User().GetByID(ctx, models.RoleStudent, req.StudentID); err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	existing, err := s.repo.Enrollment().ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	enrolled := make(map[string]bool, len(existing))
	for _, e := range existing {
		enrolled[e.CourseID] = true
	}

	var created []*models.Enrollment
	for _, courseID := range req.CourseIDs {
		if enrolled[courseID] {
			return created, fmt.Errorf("enroll: student %s already enrolled in course %s: %w",
				req.StudentID, courseID, repositories.ErrDuplicate)
		}
		course, err := s.repo.Course().GetByID(ctx, courseID)
		if err != nil {
			return created, fmt.Errorf("enroll: %w", err)
		}
		enrollment := &models.Enrollment{
			StudentID: req.StudentID,
			CourseID:  course.ID,
			TotalFee:  course.Fee,
		}
		if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
			return created, fmt.Errorf("enroll: %w", err)
		}
		enrolled[courseID] = true
		created = append(created, enrollment)
		s.logger.Info("enrollment created",
			"enrollment_id", enrollment.ID,
			"student_id", req.StudentID,
			"course_id", course.ID,
			"total_fee", course.Fee)
	}
	return created, nil
}
