package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAttendanceService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, validator: v}
}

// Mark appends one attendance event. Attendance is append-only; corrections
// are new events, not rewrites.
func (s *attendanceService) Mark(ctx context.Context, req *MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("mark attendance: %w", errs)
	}
	if _, err := s.repo.User().GetByID(ctx, models.RoleStudent, req.StudentID); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      date,
		Status:    req.Status,
	}
	if err := s.repo.Attendance().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	return record, nil
}

func (s *attendanceService) Summary(ctx context.Context, studentID, courseID string) (*models.AttendanceSummary, error) {
	records, err := s.repo.Attendance().ListByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}
	summary := &models.AttendanceSummary{
		StudentID: studentID,
		CourseID:  courseID,
		Total:     len(records),
		ByStatus:  make(map[models.AttendanceStatus]int),
	}
	attended := 0
	for _, rec := range records {
		summary.ByStatus[rec.Status]++
		if rec.Status == models.AttendancePresent || rec.Status == models.AttendanceLate {
			attended++
		}
	}
	if summary.Total > 0 {
		summary.PresentRate = float64(attended) / float64(summary.Total) * 100
	}
	return summary, nil
}
