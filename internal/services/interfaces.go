package services

import (
	"context"
	"time"

	"github.com/CCMS-2025/center-service/internal/events"
	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request structs live with their validation rules.
type RegisterUserRequest = validator.RegisterUserRequest
type EnrollRequest = validator.EnrollRequest
type AcceptPaymentRequest = validator.AcceptPaymentRequest
type MarkAttendanceRequest = validator.MarkAttendanceRequest
type SubmitRequestRequest = validator.SubmitRequestRequest
type SendMessageRequest = validator.SendMessageRequest
type CreateGroupRequest = validator.CreateGroupRequest
type SubmitFeedbackRequest = validator.SubmitFeedbackRequest

// ===== RESPONSE DTOs =====

// AuthResult carries the outcome of an authentication attempt. A wrong
// username or password is not an error, just Authenticated=false.
type AuthResult struct {
	Authenticated bool                `json:"authenticated"`
	Account       *models.UserAccount `json:"account,omitempty"`
}

// CourseInfo is the fee-and-level view of one course.
type CourseInfo struct {
	CourseID string  `json:"course_id"`
	Name     string  `json:"name"`
	Level    string  `json:"level"`
	Subject  string  `json:"subject"`
	Fee      float64 `json:"fee"`
}

// BalanceReport is a student's financial position across all enrollments.
type BalanceReport struct {
	StudentID string  `json:"student_id"`
	TotalFees float64 `json:"total_fees"`
	TotalPaid float64 `json:"total_paid"`
	Balance   float64 `json:"balance"`
}

// IncomeReportRow is the income of one (level, subject) group for a month.
type IncomeReportRow struct {
	Level   string  `json:"level"`
	Subject string  `json:"subject"`
	Total   float64 `json:"total"`
}

// IncomeReport is an ordered report structure; text layout is the caller's
// concern.
type IncomeReport struct {
	Year  int               `json:"year"`
	Month time.Month        `json:"month"`
	Rows  []IncomeReportRow `json:"rows"`
	Total float64           `json:"total"`
}

// CoursePayroll is one course's contribution to a tutor's payroll.
type CoursePayroll struct {
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	Fee         float64 `json:"fee"`
	Enrollments int     `json:"enrollments"`
	Gross       float64 `json:"gross"`
}

// PayrollReport is a tutor's monthly payroll: per-course gross, the
// center's commission and the net payout.
type PayrollReport struct {
	TutorID    string          `json:"tutor_id"`
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	Courses    []CoursePayroll `json:"courses"`
	Gross      float64         `json:"gross"`
	Commission float64         `json:"commission"`
	Net        float64         `json:"net"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
}

type RegistrationService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*models.UserAccount, error)
}

type EnrollmentService interface {
	// Enroll creates one enrollment per course, snapshotting each course's
	// fee at this moment. At most three courses per call.
	Enroll(ctx context.Context, req *EnrollRequest) ([]*models.Enrollment, error)
}

type PaymentService interface {
	// Accept records a payment and returns the receipt view. Non-positive
	// amounts and amounts above the outstanding balance are rejected.
	Accept(ctx context.Context, req *AcceptPaymentRequest) (*models.Receipt, error)
}

type AttendanceService interface {
	Mark(ctx context.Context, req *MarkAttendanceRequest) (*models.AttendanceRecord, error)
	Summary(ctx context.Context, studentID, courseID string) (*models.AttendanceSummary, error)
}

type GradingService interface {
	Grade(obtained, max float64) (*models.GradeResult, error)
}

// QueryService is the cross-table query engine: stateless, no caching,
// every call re-reads from disk.
type QueryService interface {
	CourseFeeAndLevel(ctx context.Context, courseID string) (*CourseInfo, error)
	StudentBalance(ctx context.Context, studentID string) (*BalanceReport, error)
	MonthlyIncome(ctx context.Context, year int, month time.Month) (*IncomeReport, error)
	TutorPayroll(ctx context.Context, tutorID string, year int, month time.Month) (*PayrollReport, error)
}

type RequestService interface {
	Submit(ctx context.Context, req *SubmitRequestRequest) (*models.EnrollmentRequest, error)
	ListPending(ctx context.Context) ([]*models.EnrollmentRequest, error)

	// Approve enrolls the student into the given courses and only then
	// flips the request to Approved, so a failed enrollment leaves the
	// request Pending. Blocked while the student owes a balance.
	Approve(ctx context.Context, requestID string, courseIDs []string) (*models.EnrollmentRequest, error)

	// Reject requires a non-empty reason; without one the whole action is
	// aborted and the request stays Pending.
	Reject(ctx context.Context, requestID, reason string) (*models.EnrollmentRequest, error)
}

type ChatService interface {
	SendMessage(ctx context.Context, req *SendMessageRequest) error
	DirectConversation(ctx context.Context, userA, userB string) ([]*models.Message, error)
	GroupConversation(ctx context.Context, groupID, username string) ([]*models.Message, error)
	MarkConversationRead(ctx context.Context, recipient, sender string) error

	CreateGroup(ctx context.Context, req *CreateGroupRequest) (*models.GroupChat, error)
	AddMembers(ctx context.Context, groupID, actor string, members []string) (*models.GroupChat, error)
	// RemoveMembers never removes the creator, no matter what the caller asks.
	RemoveMembers(ctx context.Context, groupID, actor string, members []string) (*models.GroupChat, error)

	// UnreadSnapshot is one pull of the refresh model: unread counts plus
	// active conversations, recomputed from disk.
	UnreadSnapshot(ctx context.Context, username string) (*events.UnreadSnapshot, error)

	// NewUnreadPoller builds the periodic refresher without starting it;
	// Tick can be driven manually in tests, Run paces it on the interval.
	NewUnreadPoller(usernames []string, interval time.Duration) *UnreadPoller
}

type FeedbackService interface {
	Submit(ctx context.Context, req *SubmitFeedbackRequest) (*models.Feedback, error)
	// AverageRating is the arithmetic mean over all feedback for the
	// target; the second value is the number of rows averaged.
	AverageRating(ctx context.Context, targetID string) (float64, int, error)
	UnreadCount(ctx context.Context, targetID string) (int, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}
