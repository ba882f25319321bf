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

type paymentFlatFile struct {
	table  *storage.Table[*models.Payment]
	alloc  storage.IDAllocator
	logger *slog.Logger
}

func newPaymentFlatFile(dataDir string, logger *slog.Logger) *paymentFlatFile {
	table := storage.NewTable(
		filepath.Join(dataDir, paymentsFile),
		"payments",
		"id,enrollment_id,amount,date",
		paymentCodec(),
		logger,
	)
	return &paymentFlatFile{
		table:  table,
		alloc:  storage.NewPrefixAllocator(paymentPrefix, paymentBase, tableIDs(table, func(p *models.Payment) string { return p.ID })),
		logger: logger,
	}
}

func (r *paymentFlatFile) Create(ctx context.Context, payment *models.Payment) error {
	id, err := r.alloc.Next()
	if err != nil {
		return err
	}
	payment.ID = id
	return r.table.Append(ctx, payment)
}

func (r *paymentFlatFile) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	payments, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("payment %s: %w", id, repositories.ErrNotFound)
}

func (r *paymentFlatFile) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, error) {
	payments, err := r.table.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Payment
	for _, p := range payments {
		if filters.EnrollmentID != "" && p.EnrollmentID != filters.EnrollmentID {
			continue
		}
		if !filters.From.IsZero() && p.Date.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && !p.Date.Before(filters.To) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *paymentFlatFile) ListByEnrollment(ctx context.Context, enrollmentID string) ([]*models.Payment, error) {
	return r.List(ctx, repositories.PaymentFilters{EnrollmentID: enrollmentID})
}
