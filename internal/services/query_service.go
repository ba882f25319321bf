package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/CCMS-2025/center-service/internal/repositories"
)

// CommissionRate is the center's cut of a tutor's gross.
const CommissionRate = 0.20

// queryService is the cross-table query engine. It holds no state beyond
// its dependencies and re-reads the tables on every call; all joins are
// linear scans, which is fine at the volumes this store is built for.
type queryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewQueryService(repo repositories.Repository, logger *slog.Logger) QueryService {
	return &queryService{repo: repo, logger: logger}
}

func (s *queryService) CourseFeeAndLevel(ctx context.Context, courseID string) (*CourseInfo, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &CourseInfo{
		CourseID: course.ID,
		Name:     course.Name,
		Level:    course.Level,
		Subject:  course.Subject,
		Fee:      course.Fee,
	}, nil
}

// StudentBalance joins the student's enrollments against their payments.
// A student with no enrollments owes nothing; that is a zero report, not an
// error.
func (s *queryService) StudentBalance(ctx context.Context, studentID string) (*BalanceReport, error) {
	enrollments, err := s.repo.Enrollment().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("student balance: %w", err)
	}
	report := &BalanceReport{StudentID: studentID}
	for _, e := range enrollments {
		report.TotalFees += e.TotalFee
		payments, err := s.repo.Payment().ListByEnrollment(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("student balance: %w", err)
		}
		for _, p := range payments {
			report.TotalPaid += p.Amount
		}
	}
	report.Balance = report.TotalFees - report.TotalPaid
	return report, nil
}

// MonthlyIncome groups the month's payments by the (level, subject) of the
// course each payment ultimately belongs to. Payments whose enrollment or
// course can no longer be resolved are grouped under "unknown" rather than
// dropped, so the total always matches the payments table.
func (s *queryService) MonthlyIncome(ctx context.Context, year int, month time.Month) (*IncomeReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	payments, err := s.repo.Payment().List(ctx, repositories.PaymentFilters{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("monthly income: %w", err)
	}

	type group struct{ level, subject string }
	totals := make(map[group]float64)
	report := &IncomeReport{Year: year, Month: month}
	for _, p := range payments {
		g := group{"unknown", "unknown"}
		if enrollment, err := s.repo.Enrollment().GetByID(ctx, p.EnrollmentID); err == nil {
			if course, err := s.repo.Course().GetByID(ctx, enrollment.CourseID); err == nil {
				g = group{course.Level, course.Subject}
			}
		}
		totals[g] += p.Amount
		report.Total += p.Amount
	}

	for g, total := range totals {
		report.Rows = append(report.Rows, IncomeReportRow{Level: g.level, Subject: g.subject, Total: total})
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Level != report.Rows[j].Level {
			return report.Rows[i].Level < report.Rows[j].Level
		}
		return report.Rows[i].Subject < report.Rows[j].Subject
	})
	return report, nil
}

// TutorPayroll prices each of the tutor's courses at its current enrollment
// count times its fee, then applies the center's commission to the sum.
func (s *queryService) TutorPayroll(ctx context.Context, tutorID string, year int, month time.Month) (*PayrollReport, error) {
	courses, err := s.repo.Course().ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("tutor payroll: %w", err)
	}
	report := &PayrollReport{TutorID: tutorID, Year: year, Month: month}
	for _, course := range courses {
		count, err := s.repo.Enrollment().CountByCourse(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("tutor payroll: %w", err)
		}
		gross := float64(count) * course.Fee
		report.Courses = append(report.Courses, CoursePayroll{
			CourseID:    course.ID,
			CourseName:  course.Name,
			Fee:         course.Fee,
			Enrollments: count,
			Gross:       gross,
		})
		report.Gross += gross
	}
	report.Commission = report.Gross * CommissionRate
	report.Net = report.Gross - report.Commission
	return report, nil
}
