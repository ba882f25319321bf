package services

import (
	"context"
	"strings"
	"testing"

	"github.com/CCMS-2025/center-service/internal/models"
)

func TestAcceptPaymentIssuesReceipt(t *testing.T) {
	f := newFixture(t)
	student := f.addUser(t, models.RoleStudent, "s1")
	tutor := f.addUser(t, models.RoleTutor, "t1")
	course := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 250)
	enrollment := f.enroll(t, student.ID, course.ID)[0]

	svc := NewPaymentService(f.repo, f.logger, f.validator)
	receipt, err := svc.Accept(context.Background(), &AcceptPaymentRequest{EnrollmentID: enrollment.ID, Amount: 100})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if receipt.StudentID != student.ID || receipt.CourseName != "Algebra" {
		t.Errorf("receipt = %+v", receipt)
	}
	if !almostEqual(receipt.Outstanding, 150) {
		t.Errorf("outstanding = %.2f, want 150", receipt.Outstanding)
	}
	if receipt.PaymentID == "" {
		t.Error("receipt has no payment id")
	}
}

func TestAcceptPaymentRejectsNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	svc := NewPaymentService(f.repo, f.logger, f.validator)

	for _, amount := range []float64{0, -50} {
		_, err := svc.Accept(context.Background(), &AcceptPaymentRequest{EnrollmentID: "ENR-001", Amount: amount})
		if err == nil {
			t.Errorf("amount %.2f accepted, want rejection", amount)
		}
	}
}

func TestAcceptPaymentRejectsOverpayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	tutor := f.addUser(t, models.RoleTutor, "t1")
	course := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 100)
	enrollment := f.enroll(t, student.ID, course.ID)[0]
	f.pay(t, enrollment.ID, 80)

	svc := NewPaymentService(f.repo, f.logger, f.validator)
	_, err := svc.Accept(ctx, &AcceptPaymentRequest{EnrollmentID: enrollment.ID, Amount: 30})
	if err == nil || !strings.Contains(err.Error(), "exceeds outstanding") {
		t.Fatalf("overpayment err = %v", err)
	}

	// Settling the exact remainder is fine.
	receipt, err := svc.Accept(ctx, &AcceptPaymentRequest{EnrollmentID: enrollment.ID, Amount: 20})
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if !almostEqual(receipt.Outstanding, 0) {
		t.Errorf("outstanding after settling = %.2f, want 0", receipt.Outstanding)
	}
}

func TestAcceptPaymentUnknownEnrollment(t *testing.T) {
	f := newFixture(t)
	svc := NewPaymentService(f.repo, f.logger, f.validator)
	if _, err := svc.Accept(context.Background(), &AcceptPaymentRequest{EnrollmentID: "ENR-404", Amount: 10}); err == nil {
		t.Error("payment on unknown enrollment accepted")
	}
}
