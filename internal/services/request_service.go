package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

type requestService struct {
	repo        repositories.Repository
	logger      *slog.Logger
	validator   *validator.Validator
	enrollments EnrollmentService
	queries     QueryService
}

func NewRequestService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) RequestService {
	return &requestService{
		repo:        repo,
		logger:      logger,
		validator:   v,
		enrollments: NewEnrollmentService(repo, logger, v),
		queries:     NewQueryService(repo, logger),
	}
}

func (s *requestService) Submit(ctx context.Context, req *SubmitRequestRequest) (*models.EnrollmentRequest, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("submit request: %w", errs)
	}
	if _, err := s.repo.User().GetByID(ctx, models.RoleStudent, req.StudentID); err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}
	request := &models.EnrollmentRequest{
		StudentID: req.StudentID,
		Details:   req.Details,
		Status:    models.RequestPending,
		Date:      time.Now(),
	}
	if err := s.repo.Request().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}
	s.logger.Info("enrollment request submitted", "request_id", request.ID, "student_id", request.StudentID)
	return request, nil
}

func (s *requestService) ListPending(ctx context.Context) ([]*models.EnrollmentRequest, error) {
	return s.repo.Request().ListPending(ctx)
}

// Approve enrolls first and flips the status last, so a failed enrollment
// write leaves the request Pending and the whole action retryable.
func (s *requestService) Approve(ctx context.Context, requestID string, courseIDs []string) (*models.EnrollmentRequest, error) {
	request, err := s.repo.Request().GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("approve request %s: status is %s, not %s", requestID, request.Status, models.RequestPending)
	}

	balance, err := s.queries.StudentBalance(ctx, request.StudentID)
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	if balance.Balance > 0 {
		return nil, fmt.Errorf("approve request %s: student %s has outstanding balance %.2f",
			requestID, request.StudentID, balance.Balance)
	}

	if _, err := s.enrollments.Enroll(ctx, &EnrollRequest{StudentID: request.StudentID, CourseIDs: courseIDs}); err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}

	if _, err := s.repo.Request().UpdateStatus(ctx, requestID, models.RequestApproved); err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	request.Status = models.RequestApproved
	s.logger.Info("enrollment request approved", "request_id", requestID, "courses", len(courseIDs))
	return request, nil
}

// Reject demands a reason. An empty or cancelled reason aborts the whole
// action before any write, leaving the request Pending.
func (s *requestService) Reject(ctx context.Context, requestID, reason string) (*models.EnrollmentRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("reject request %s: a reason is required", requestID)
	}
	if strings.ContainsAny(reason, ",\r\n") {
		return nil, fmt.Errorf("reject request %s: reason must not contain separators or line breaks", requestID)
	}

	request, err := s.repo.Request().GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("reject request: %w", err)
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("reject request %s: status is %s, not %s", requestID, request.Status, models.RequestPending)
	}

	status := models.RejectedStatus(reason)
	if _, err := s.repo.Request().UpdateStatus(ctx, requestID, status); err != nil {
		return nil, fmt.Errorf("reject request: %w", err)
	}
	request.Status = status
	s.logger.Info("enrollment request rejected", "request_id", requestID, "reason", reason)
	return request, nil
}
