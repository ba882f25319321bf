package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CCMS-2025/center-service/internal/events"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

// ServiceManager constructs and hands out every domain service over one
// repository.
type ServiceManager interface {
	Auth() AuthService
	Registration() RegistrationService
	Enrollment() EnrollmentService
	Payment() PaymentService
	Attendance() AttendanceService
	Grading() GradingService
	Query() QueryService
	Request() RequestService
	Chat() ChatService
	Feedback() FeedbackService

	HealthCheck(ctx context.Context) error
	Close() error
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher

	auth         AuthService
	registration RegistrationService
	enrollment   EnrollmentService
	payment      PaymentService
	attendance   AttendanceService
	grading      GradingService
	query        QueryService
	request      RequestService
	chat         ChatService
	feedback     FeedbackService
}

func NewServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.Publisher) ServiceManager {
	m := &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
	m.auth = NewAuthService(repo, logger)
	m.registration = NewRegistrationService(repo, logger, v)
	m.enrollment = NewEnrollmentService(repo, logger, v)
	m.payment = NewPaymentService(repo, logger, v)
	m.attendance = NewAttendanceService(repo, logger, v)
	m.grading = NewGradingService(logger)
	m.query = NewQueryService(repo, logger)
	m.request = NewRequestService(repo, logger, v)
	m.chat = NewChatService(repo, logger, v, publisher)
	m.feedback = NewFeedbackService(repo, logger, v)
	return m
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Registration() RegistrationService { return m.registration }
func (m *serviceManager) Enrollment() EnrollmentService     { return m.enrollment }
func (m *serviceManager) Payment() PaymentService           { return m.payment }
func (m *serviceManager) Attendance() AttendanceService     { return m.attendance }
func (m *serviceManager) Grading() GradingService           { return m.grading }
func (m *serviceManager) Query() QueryService               { return m.query }
func (m *serviceManager) Request() RequestService           { return m.request }
func (m *serviceManager) Chat() ChatService                 { return m.chat }
func (m *serviceManager) Feedback() FeedbackService         { return m.feedback }

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

func (m *serviceManager) Close() error {
	return m.publisher.Close()
}
