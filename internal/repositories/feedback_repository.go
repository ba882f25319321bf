package repositories

import (
	"context"

	"github.com/CCMS-2025/center-service/internal/models"
)

type FeedbackRepository interface {
	// Create allocates the next feedback id and appends the record with
	// status Unread.
	Create(ctx context.Context, feedback *models.Feedback) error

	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context) ([]*models.Feedback, error)
	ListByTarget(ctx context.Context, targetID string) ([]*models.Feedback, error)

	// MarkRead flips one feedback row to Read.
	MarkRead(ctx context.Context, id string) (bool, error)
}
