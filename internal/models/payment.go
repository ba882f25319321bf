package models

import "time"

// Payment is one accepted payment against an enrollment.
type Payment struct {
	ID           string    `json:"id"`
	EnrollmentID string    `json:"enrollment_id"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
}

// Receipt is the view returned to the caller after a payment is accepted.
type Receipt struct {
	PaymentID    string    `json:"payment_id"`
	EnrollmentID string    `json:"enrollment_id"`
	StudentID    string    `json:"student_id"`
	CourseName   string    `json:"course_name"`
	Amount       float64   `json:"amount"`
	Outstanding  float64   `json:"outstanding"`
	Date         time.Time `json:"date"`
}
