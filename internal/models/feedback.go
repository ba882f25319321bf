package models

import "time"

type FeedbackStatus string

const (
	FeedbackUnread FeedbackStatus = "Unread"
	FeedbackRead   FeedbackStatus = "Read"
)

// Feedback is a rated note from one user about another (e.g. a student about
// a tutor, or a tutor about the center).
type Feedback struct {
	ID          string         `json:"id"`
	SubmitterID string         `json:"submitter_id"`
	TargetRole  Role           `json:"target_role"`
	TargetID    string         `json:"target_id"`
	Subject     string         `json:"subject"`
	Rating      int            `json:"rating"` // 1..5
	Content     string         `json:"content"`
	Date        time.Time      `json:"date"`
	Status      FeedbackStatus `json:"status"`
}
