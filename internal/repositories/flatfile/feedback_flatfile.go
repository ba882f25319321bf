package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/storage"
)

type feedbackFlatFile struct {
	table  *storage.Table[*models.Feedback]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newFeedbackFlatFile(dataDir string, logger *slog.Logger) *feedbackFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, feedbackFile),
		"feedback",
		"id,submitter_id,target_role,target_id,subject,rating,content,date,status",
		feedbackCodec(),
		logger,
	)
	return &feedbackFlatFile{
		table:  table,
		alloc:  storage.NewPrefixAllocator(feedbackPrefix, feedbackBase, tableIDs(table, func(f *models.Feedback) string { return f.ID })),
		logger: logger,
	}
}

func (r *feedbackFlatFile) Create(ctx context.Context, feedback *models.Feedback) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	feedback.ID = id
	if feedback.Status == "" {
		feedback.Status = models.FeedbackUnread
	}
	return r.table.Append(ctx, feedback)
}

func (r *feedbackFlatFile) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	rows, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range rows {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
}

func (r *feedbackFlatFile) List(ctx context.Context) ([]*models.Feedback, error) {
	return r.table.Scan(ctx)
}

func (r *feedbackFlatFile) ListByTarget(ctx context.Context, targetID string) ([]*models.Feedback, error) {
	rows, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Feedback
	for _, f := range rows {
		if f.TargetID == targetID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *feedbackFlatFile) MarkRead(ctx context.Context, id string) (bool, error) {
	return r.table.Update(ctx,
		func(f *models.Feedback) bool { return f.ID == id && f.Status != models.FeedbackRead },
		func(f *models.Feedback) *models.Feedback {
			updated := *f
			updated.Status = models.FeedbackRead
			return &updated
		},
	)
}
