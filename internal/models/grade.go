package models

// GradeResult is a computed grade for an obtained/max score pair.
type GradeResult struct {
	Obtained   float64 `json:"obtained"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
	Letter     string  `json:"letter"`
}
