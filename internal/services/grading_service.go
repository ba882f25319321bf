package services

import (
	"fmt"
	"log/slog"

	"github.com/CCMS-2025/center-service/internal/models"
)

type gradingService struct {
	logger *slog.Logger
}

func NewGradingService(logger *slog.Logger) GradingService {
	return &gradingService{logger: logger}
}

// gradeBands maps inclusive percentage cutoffs to letters, highest first.
var gradeBands = []struct {
	cutoff float64
	letter string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
	{50, "C-"},
}

// Grade computes the percentage and letter for an obtained/max pair.
// Cutoffs are inclusive: 74/100 is a "B", 75/100 a "B+".
func (s *gradingService) Grade(obtained, max float64) (*models.GradeResult, error) {
	if max <= 0 {
		return nil, fmt.Errorf("grade: max score %.2f must be positive", max)
	}
	if obtained < 0 || obtained > max {
		return nil, fmt.Errorf("grade: obtained %.2f out of range [0, %.2f]", obtained, max)
	}

	percentage := obtained / max * 100
	letter := "F"
	for _, band := range gradeBands {
		if percentage >= band.cutoff {
			letter = band.letter
			break
		}
	}
	return &models.GradeResult{
		Obtained:   obtained,
		Max:        max,
		Percentage: percentage,
		Letter:     letter,
	}, nil
}
