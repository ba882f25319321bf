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

// balanceEpsilon absorbs float drift when comparing money values that were
// round-tripped through the two-decimal text encoding.
const balanceEpsilon = 0.005

type paymentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPaymentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) PaymentService {
	return &paymentService{repo: repo, logger: logger, validator: v}
}

func (s *paymentService) Accept(ctx context.Context, req *AcceptPaymentRequest) (*models.Receipt, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("accept payment: %w", errs)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("accept payment: amount %.2f must be positive", req.Amount)
	}

	enrollment, err := s.repo.Enrollment().GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, fmt.Errorf("accept payment: %w", err)
	}
	outstanding, err := s.outstanding(ctx, enrollment)
	if err != nil {
		return nil, fmt.Errorf("accept payment: %w", err)
	}
	if req.Amount > outstanding+balanceEpsilon {
		return nil, fmt.Errorf("accept payment: amount %.2f exceeds outstanding balance %.2f", req.Amount, outstanding)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	payment := &models.Payment{
		EnrollmentID: enrollment.ID,
		Amount:       req.Amount,
		Date:         date,
	}
	if err := s.repo.Payment().Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("accept payment: %w", err)
	}

	receipt := &models.Receipt{
		PaymentID:    payment.ID,
		EnrollmentID: enrollment.ID,
		StudentID:    enrollment.StudentID,
		Amount:       payment.Amount,
		Outstanding:  outstanding - payment.Amount,
		Date:         payment.Date,
	}
	// Course name is decoration on the receipt; a dangling course reference
	// must not fail the payment.
	if course, err := s.repo.Course().GetByID(ctx, enrollment.CourseID); err == nil {
		receipt.CourseName = course.Name
	}

	s.logger.Info("payment accepted",
		"payment_id", payment.ID,
		"enrollment_id", enrollment.ID,
		"amount", payment.Amount,
		"outstanding", receipt.Outstanding)
	return receipt, nil
}

func (s *paymentService) outstanding(ctx context.Context, enrollment *models.Enrollment) (float64, error) {
	payments, err := s.repo.Payment().ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return 0, err
	}
	paid := 0.0
	for _, p := range payments {
		paid += p.Amount
	}
	return enrollment.TotalFee - paid, nil
}
