package models

import (
	"fmt"
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceExcused AttendanceStatus = "Excused"
)

func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return AttendanceStatus(s), nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

// AttendanceRecord is one attendance event for one student in one course.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	CourseID  string           `json:"course_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceSummary aggregates a student's records for one course.
type AttendanceSummary struct {
	StudentID string                   `json:"student_id"`
	CourseID  string                   `json:"course_id"`
	Total     int                      `json:"total"`
	ByStatus  map[AttendanceStatus]int `json:"by_status"`
	// PresentRate counts Present and Late sessions against the total.
	PresentRate float64 `json:"present_rate"`
}
