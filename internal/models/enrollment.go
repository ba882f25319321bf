package models

import (
	"fmt"
	"strings"
	"time"
)

// Enrollment links a student to a course. TotalFee is snapshotted from the
// course at enrollment time; later course fee changes never touch it.
type Enrollment struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
	TotalFee  float64 `json:"total_fee"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

const rejectedPrefix = string(RequestRejected) + ":"

// RejectedStatus encodes a rejection with its mandatory reason,
// e.g. "Rejected:duplicate request".
func RejectedStatus(reason string) RequestStatus {
	return RequestStatus(rejectedPrefix + reason)
}

func (s RequestStatus) IsRejected() bool {
	return s == RequestRejected || strings.HasPrefix(string(s), rejectedPrefix)
}

// RejectionReason returns the reason carried by a rejected status.
func (s RequestStatus) RejectionReason() string {
	return strings.TrimPrefix(string(s), rejectedPrefix)
}

// EnrollmentRequest is a student's free-text enrollment request awaiting a
// receptionist decision.
type EnrollmentRequest struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	Details   string        `json:"details"`
	Status    RequestStatus `json:"status"`
	Date      time.Time     `json:"date"`
}

func (r EnrollmentRequest) String() string {
	return fmt.Sprintf("%s [%s] %s", r.ID, r.Status, r.Details)
}
