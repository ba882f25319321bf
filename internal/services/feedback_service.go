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

type feedbackService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeedbackService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) FeedbackService {
	return &feedbackService{repo: repo, logger: logger, validator: v}
}

func (s *feedbackService) Submit(ctx context.Context, req *SubmitFeedbackRequest) (*models.Feedback, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("submit feedback: %w", errs)
	}
	if _, err := s.repo.User().GetByID(ctx, req.TargetRole, req.TargetID); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	feedback := &models.Feedback{
		SubmitterID: req.SubmitterID,
		TargetRole:  req.TargetRole,
		TargetID:    req.TargetID,
		Subject:     req.Subject,
		Rating:      req.Rating,
		Content:     req.Content,
		Date:        time.Now(),
		Status:      models.FeedbackUnread,
	}
	if err := s.repo.Feedback().Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	s.logger.Info("feedback submitted", "feedback_id", feedback.ID, "target_id", feedback.TargetID, "rating", feedback.Rating)
	return feedback, nil
}

// AverageRating is the arithmetic mean over every feedback row for the
// target. No feedback yields (0, 0), not an error.
func (s *feedbackService) AverageRating(ctx context.Context, targetID string) (float64, int, error) {
	rows, err := s.repo.Feedback().ListByTarget(ctx, targetID)
	if err != nil {
		return 0, 0, fmt.Errorf("average rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, f := range rows {
		sum += f.Rating
	}
	return float64(sum) / float64(len(rows)), len(rows), nil
}

func (s *feedbackService) UnreadCount(ctx context.Context, targetID string) (int, error) {
	rows, err := s.repo.Feedback().ListByTarget(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("unread feedback: %w", err)
	}
	count := 0
	for _, f := range rows {
		if f.Status != models.FeedbackRead {
			count++
		}
	}
	return count, nil
}

func (s *feedbackService) MarkRead(ctx context.Context, id string) (bool, error) {
	return s.repo.Feedback().MarkRead(ctx, id)
}
