package models

// Course is a tutored course offered by the center. TutorID references a row
// in the tutors table; nothing enforces that reference at storage level.
type Course struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	TutorID string  `json:"tutor_id"`
	Level   string  `json:"level"`
	Subject string  `json:"subject"`
	Fee     float64 `json:"fee"`
}
