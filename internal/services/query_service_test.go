package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 0.005 }

func TestStudentBalanceAcrossEnrollments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	tutor := f.addUser(t, models.RoleTutor, "t1")
	math1 := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 200)
	phys := f.addCourse(t, "Mechanics", tutor.ID, "O-Level", "Physics", 100)

	enrollments := f.enroll(t, student.ID, math1.ID, phys.ID)
	f.pay(t, enrollments[0].ID, 60)
	f.pay(t, enrollments[0].ID, 40)

	report, err := NewQueryService(f.repo, f.logger).StudentBalance(ctx, student.ID)
	if err != nil {
		t.Fatalf("StudentBalance: %v", err)
	}
	if !almostEqual(report.TotalFees, 300) || !almostEqual(report.TotalPaid, 100) || !almostEqual(report.Balance, 200) {
		t.Errorf("balance = %+v, want fees 300 paid 100 balance 200", report)
	}
}

func TestStudentBalanceWithNoEnrollmentsIsZero(t *testing.T) {
	f := newFixture(t)
	report, err := NewQueryService(f.repo, f.logger).StudentBalance(context.Background(), "STU-999")
	if err != nil {
		t.Fatalf("StudentBalance: %v", err)
	}
	if report.TotalFees != 0 || report.TotalPaid != 0 || report.Balance != 0 {
		t.Errorf("report = %+v, want all zeros", report)
	}
}

func TestTutorPayrollAppliesCommission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tutor := f.addUser(t, models.RoleTutor, "t1")
	course := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 50)
	for _, name := range []string{"s1", "s2", "s3", "s4"} {
		student := f.addUser(t, models.RoleStudent, name)
		f.enroll(t, student.ID, course.ID)
	}

	report, err := NewQueryService(f.repo, f.logger).TutorPayroll(ctx, tutor.ID, 2025, time.March)
	if err != nil {
		t.Fatalf("TutorPayroll: %v", err)
	}
	if !almostEqual(report.Gross, 200) || !almostEqual(report.Commission, 40) || !almostEqual(report.Net, 160) {
		t.Errorf("payroll = gross %.2f commission %.2f net %.2f, want 200/40/160",
			report.Gross, report.Commission, report.Net)
	}
	if len(report.Courses) != 1 || report.Courses[0].Enrollments != 4 {
		t.Errorf("courses = %+v", report.Courses)
	}
}

func TestTutorPayrollWithNoCoursesIsZero(t *testing.T) {
	f := newFixture(t)
	report, err := NewQueryService(f.repo, f.logger).TutorPayroll(context.Background(), "TUT-999", 2025, time.March)
	if err != nil {
		t.Fatalf("TutorPayroll: %v", err)
	}
	if report.Gross != 0 || report.Net != 0 || len(report.Courses) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestMonthlyIncomeGroupsByLevelAndSubject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tutor := f.addUser(t, models.RoleTutor, "t1")
	student := f.addUser(t, models.RoleStudent, "s1")
	math1 := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 500)
	phys := f.addCourse(t, "Mechanics", tutor.ID, "A-Level", "Physics", 500)
	enrollments := f.enroll(t, student.ID, math1.ID, phys.ID)

	march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	payments := NewPaymentService(f.repo, f.logger, f.validator)
	for _, p := range []struct {
		enrollmentID string
		amount       float64
		date         time.Time
	}{
		{enrollments[0].ID, 100, march},
		{enrollments[0].ID, 50, march},
		{enrollments[1].ID, 80, march},
		{enrollments[1].ID, 300, april}, // outside the requested month
	} {
		_, err := payments.Accept(ctx, &AcceptPaymentRequest{EnrollmentID: p.enrollmentID, Amount: p.amount, Date: p.date})
		if err != nil {
			t.Fatalf("pay %.2f: %v", p.amount, err)
		}
	}

	report, err := NewQueryService(f.repo, f.logger).MonthlyIncome(ctx, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthlyIncome: %v", err)
	}
	if !almostEqual(report.Total, 230) {
		t.Errorf("total = %.2f, want 230", report.Total)
	}
	want := []IncomeReportRow{
		{Level: "A-Level", Subject: "Physics", Total: 80},
		{Level: "O-Level", Subject: "Math", Total: 150},
	}
	if len(report.Rows) != len(want) {
		t.Fatalf("rows = %+v, want %+v", report.Rows, want)
	}
	for i, row := range report.Rows {
		if row.Level != want[i].Level || row.Subject != want[i].Subject || !almostEqual(row.Total, want[i].Total) {
			t.Errorf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}

func TestMonthlyIncomeKeepsUnresolvablePayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A payment whose enrollment no longer exists still counts.
	march := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	err := f.repo.Payment().Create(ctx, &models.Payment{EnrollmentID: "ENR-404", Amount: 75, Date: march})
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewQueryService(f.repo, f.logger).MonthlyIncome(ctx, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthlyIncome: %v", err)
	}
	if !almostEqual(report.Total, 75) {
		t.Errorf("total = %.2f, want 75", report.Total)
	}
	if len(report.Rows) != 1 || report.Rows[0].Level != "unknown" || report.Rows[0].Subject != "unknown" {
		t.Errorf("rows = %+v, want one unknown/unknown row", report.Rows)
	}
}

func TestCourseFeeAndLevel(t *testing.T) {
	f := newFixture(t)
	tutor := f.addUser(t, models.RoleTutor, "t1")
	course := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 120)

	info, err := NewQueryService(f.repo, f.logger).CourseFeeAndLevel(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("CourseFeeAndLevel: %v", err)
	}
	if info.Level != "O-Level" || !almostEqual(info.Fee, 120) {
		t.Errorf("info = %+v", info)
	}

	_, err = NewQueryService(f.repo, f.logger).CourseFeeAndLevel(context.Background(), "C-404")
	if !repositories.IsNotFoundError(err) {
		t.Errorf("unknown course err = %v, want not found", err)
	}
}
