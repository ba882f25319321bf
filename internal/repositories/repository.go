package repositories

import "context"

// Repository aggregates every table-level repository plus the maintenance
// operations that span all tables.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Payment() PaymentRepository
	Attendance() AttendanceRepository
	Request() RequestRepository
	Message() MessageRepository
	GroupChat() GroupChatRepository
	Feedback() FeedbackRepository

	// Backup copies every table file into a dated folder under the
	// configured backup directory.
	Backup(ctx context.Context) (*BackupResult, error)

	// ExportCSV writes every table as comma-separated with a literal CSV
	// header row per entity. ExportXLSX writes one sheet per entity.
	ExportCSV(ctx context.Context, dir string) error
	ExportXLSX(ctx context.Context, path string) error

	// Ping verifies the data directory is usable.
	Ping(ctx context.Context) error

	Close() error
}

// BackupResult describes one completed backup run.
type BackupResult struct {
	Dir   string `json:"dir"`
	Files int    `json:"files"`
}
