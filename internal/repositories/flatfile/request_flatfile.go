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

type requestFlatFile struct {
	table  *storage.Table[*models.EnrollmentRequest]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newRequestFlatFile(dataDir string, logger *slog.Logger) *requestFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, requestsFile),
		"requests",
		"id,student_id,details,status,date",
		requestCodec(),
		logger,
	)
	return &requestFlatFile{
		table:  table,
		alloc:  storage.NewPrefixAllocator(requestPrefix, requestBase, tableIDs(table, func(r *models.EnrollmentRequest) string { return r.ID })),
		logger: logger,
	}
}

func (r *requestFlatFile) Create(ctx context.Context, request *models.EnrollmentRequest) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	request.ID = id
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	return r.table.Append(ctx, request)
}

func (r *requestFlatFile) GetByID(ctx context.Context, id string) (*models.EnrollmentRequest, error) {
	requests, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, fmt.Errorf("request %s: %w", id, repositories.ErrNotFound)
}

func (r *requestFlatFile) List(ctx context.Context) ([]*models.EnrollmentRequest, error) {
	return r.table.Scan(ctx)
}

func (r *requestFlatFile) ListByStudent(ctx context.Context, studentID string) ([]*models.EnrollmentRequest, error) {
	requests, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.EnrollmentRequest
	for _, req := range requests {
		if req.StudentID == studentID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *requestFlatFile) ListPending(ctx context.Context) ([]*models.EnrollmentRequest, error) {
	requests, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.EnrollmentRequest
	for _, req := range requests {
		if req.Status == models.RequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *requestFlatFile) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) (bool, error) {
	return r.table.Update(ctx,
		func(req *models.EnrollmentRequest) bool { return req.ID == id },
		func(req *models.EnrollmentRequest) *models.EnrollmentRequest {
			updated := *req
			updated.Status = status
			return &updated
		},
	)
}
