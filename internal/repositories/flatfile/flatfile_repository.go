package flatfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/CCMS-2025/center-service/internal/repositories"
)

// Config holds everything the flat-file store needs. It is injected into
// the constructor so tests can point each fixture at its own directory.
type Config struct {
	// DataDir holds one file per table plus the counter file.
	DataDir string
	// BackupDir receives dated backup folders. Defaults to DataDir/backups.
	BackupDir string
	// Cascade decides what a course delete does with dependent enrollments.
	// Defaults to CascadeKeep, matching the historical behavior.
	Cascade repositories.CascadePolicy
}

// FlatFileRepository implements repositories.Repository over one delimited
// text file per table. All operations are synchronous file reads or atomic
// whole-file rewrites; single-process access is assumed.
type FlatFileRepository struct {
	cfg    Config
	logger *slog.Logger

	user       *userFlatFile
	course     *courseFlatFile
	enrollment *enrollmentFlatFile
	payment    *paymentFlatFile
	attendance *attendanceFlatFile
	request    *requestFlatFile
	message    *messageFlatFile
	group      *groupFlatFile
	feedback   *feedbackFlatFile

	// tables drives backup and export; one entry per table file.
	tables []exportTable
}

// NewFlatFileRepository creates the repository and its sub-repositories.
// Table files are created lazily on first write; the data directory is
// created eagerly so Ping can verify it.
func NewFlatFileRepository(cfg Config, logger *slog.Logger) (*FlatFileRepository, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("flatfile: data dir is required")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.DataDir, "backups")
	}
	if cfg.Cascade == "" {
		cfg.Cascade = repositories.CascadeKeep
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("flatfile: %w", err)
	}

	repo := &FlatFileRepository{cfg: cfg, logger: logger}

	repo.user = newUserFlatFile(cfg.DataDir, logger)
	repo.enrollment = newEnrollmentFlatFile(cfg.DataDir, logger)
	repo.course = newCourseFlatFile(cfg.DataDir, cfg.Cascade, repo.enrollment, logger)
	repo.payment = newPaymentFlatFile(cfg.DataDir, logger)
	repo.attendance = newAttendanceFlatFile(cfg.DataDir, logger)
	repo.request = newRequestFlatFile(cfg.DataDir, logger)
	repo.message = newMessageFlatFile(cfg.DataDir, logger)
	repo.group = newGroupFlatFile(cfg.DataDir, logger)
	repo.feedback = newFeedbackFlatFile(cfg.DataDir, logger)

	repo.tables = exportTables(cfg.DataDir)
	return repo, nil
}

func (r *FlatFileRepository) User() repositories.UserRepository             { return r.user }
func (r *FlatFileRepository) Course() repositories.CourseRepository         { return r.course }
func (r *FlatFileRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }
func (r *FlatFileRepository) Payment() repositories.PaymentRepository       { return r.payment }
func (r *FlatFileRepository) Attendance() repositories.AttendanceRepository { return r.attendance }
func (r *FlatFileRepository) Request() repositories.RequestRepository       { return r.request }
func (r *FlatFileRepository) Message() repositories.MessageRepository       { return r.message }
func (r *FlatFileRepository) GroupChat() repositories.GroupChatRepository   { return r.group }
func (r *FlatFileRepository) Feedback() repositories.FeedbackRepository     { return r.feedback }

// Ping verifies the data directory exists and is writable.
func (r *FlatFileRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(r.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("flatfile ping: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("flatfile ping: %s is not a directory", r.cfg.DataDir)
	}
	probe := filepath.Join(r.cfg.DataDir, ".ping")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("flatfile ping: %w", err)
	}
	os.Remove(probe)
	return nil
}

// Close is a no-op: no descriptors are held between operations.
func (r *FlatFileRepository) Close() error { return nil }
