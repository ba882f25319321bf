package validator

import (
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
)

// RegisterUserRequest creates one account in the role's table.
type RegisterUserRequest struct {
	Username       string      `json:"username" validate:"required,min=3,max=40,plain_field"`
	Password       string      `json:"password" validate:"required,min=4,max=72,plain_field"`
	Role           models.Role `json:"role" validate:"required,role"`
	FullName       string      `json:"full_name" validate:"required,max=100,plain_field"`
	Specialization string      `json:"specialization" validate:"omitempty,max=100,plain_field"`
}

// EnrollRequest enrolls one student into up to three courses at once.
type EnrollRequest struct {
	StudentID string   `json:"student_id" validate:"required,plain_field"`
	CourseIDs []string `json:"course_ids" validate:"required,min=1,max=3,dive,required,plain_field"`
}

// AcceptPaymentRequest records one payment against an enrollment.
type AcceptPaymentRequest struct {
	EnrollmentID string    `json:"enrollment_id" validate:"required,plain_field"`
	Amount       float64   `json:"amount" validate:"required,gt=0"`
	Date         time.Time `json:"date"`
}

// MarkAttendanceRequest appends one attendance event.
type MarkAttendanceRequest struct {
	StudentID string                  `json:"student_id" validate:"required,plain_field"`
	CourseID  string                  `json:"course_id" validate:"required,plain_field"`
	Date      time.Time               `json:"date"`
	Status    models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
}

// SubmitRequestRequest files a student's enrollment request.
type SubmitRequestRequest struct {
	StudentID string `json:"student_id" validate:"required,plain_field"`
	Details   string `json:"details" validate:"required,max=500,plain_field"`
}

// SendMessageRequest appends one direct or group message.
type SendMessageRequest struct {
	Sender    string `json:"sender" validate:"required,plain_field"`
	Recipient string `json:"recipient" validate:"omitempty,plain_field"`
	GroupID   string `json:"group_id" validate:"omitempty,plain_field"`
	Content   string `json:"content" validate:"required,max=1000,pipe_field"`
}

// CreateGroupRequest creates a group chat; the creator is always a member.
type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required,max=60,plain_field"`
	Creator string   `json:"creator" validate:"required,plain_field"`
	Members []string `json:"members" validate:"dive,required,plain_field"`
}

// SubmitFeedbackRequest files one rated feedback row.
type SubmitFeedbackRequest struct {
	SubmitterID string      `json:"submitter_id" validate:"required,plain_field"`
	TargetRole  models.Role `json:"target_role" validate:"required,role"`
	TargetID    string      `json:"target_id" validate:"required,plain_field"`
	Subject     string      `json:"subject" validate:"required,max=100,plain_field"`
	Rating      int         `json:"rating" validate:"required,min=1,max=5"`
	Content     string      `json:"content" validate:"required,max=1000,plain_field"`
}
