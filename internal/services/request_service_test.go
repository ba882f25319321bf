package services

import (
	"context"
	"strings"
	"testing"

	"github.com/CCMS-2025/center-service/internal/models"
)

func submitRequest(t *testing.T, f *fixture, studentID string) *models.EnrollmentRequest {
	t.Helper()
	svc := NewRequestService(f.repo, f.logger, f.validator)
	request, err := svc.Submit(context.Background(), &SubmitRequestRequest{StudentID: studentID, Details: "wants algebra"})
	if err != nil {
		t.Fatalf("submit request: %v", err)
	}
	return request
}

func TestApproveEnrollsThenFlipsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	tutor := f.addUser(t, models.RoleTutor, "t1")
	course := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 100)
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	approved, err := svc.Approve(ctx, request.ID, []string{course.ID})
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.RequestApproved {
		t.Errorf("status = %s, want %s", approved.Status, models.RequestApproved)
	}
	enrollments, _ := f.repo.Enrollment().ListByStudent(ctx, student.ID)
	if len(enrollments) != 1 {
		t.Errorf("enrollments = %d, want 1", len(enrollments))
	}
}

func TestApproveFailedEnrollmentLeavesRequestPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	if _, err := svc.Approve(ctx, request.ID, []string{"C-404"}); err == nil {
		t.Fatal("approve with unknown course succeeded")
	}
	stored, err := f.repo.Request().GetByID(ctx, request.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.RequestPending {
		t.Errorf("status = %s, want still %s", stored.Status, models.RequestPending)
	}
}

func TestApproveBlockedByOutstandingBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	tutor := f.addUser(t, models.RoleTutor, "t1")
	owed := f.addCourse(t, "Mechanics", tutor.ID, "O-Level", "Physics", 100)
	wanted := f.addCourse(t, "Algebra", tutor.ID, "O-Level", "Math", 100)
	enrollment := f.enroll(t, student.ID, owed.ID)[0]
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	_, err := svc.Approve(ctx, request.ID, []string{wanted.ID})
	if err == nil || !strings.Contains(err.Error(), "outstanding balance") {
		t.Fatalf("err = %v, want balance block", err)
	}

	// Settling the debt unblocks the approval.
	f.pay(t, enrollment.ID, 100)
	if _, err := svc.Approve(ctx, request.ID, []string{wanted.ID}); err != nil {
		t.Fatalf("approve after settling: %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	for _, reason := range []string{"", "   ", "\t"} {
		if _, err := svc.Reject(ctx, request.ID, reason); err == nil {
			t.Errorf("reject with reason %q succeeded", reason)
		}
	}
	stored, _ := f.repo.Request().GetByID(ctx, request.ID)
	if stored.Status != models.RequestPending {
		t.Errorf("status = %s, want untouched %s", stored.Status, models.RequestPending)
	}
}

func TestRejectStoresReasonInStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	rejected, err := svc.Reject(ctx, request.ID, "duplicate request")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if !rejected.Status.IsRejected() || rejected.Status.RejectionReason() != "duplicate request" {
		t.Errorf("status = %q", rejected.Status)
	}

	// A decided request cannot be decided again.
	if _, err := svc.Reject(ctx, request.ID, "again"); err == nil {
		t.Error("second reject succeeded")
	}
	if _, err := svc.Approve(ctx, request.ID, nil); err == nil {
		t.Error("approve after reject succeeded")
	}
}

func TestRejectReasonMustBePlain(t *testing.T) {
	f := newFixture(t)
	student := f.addUser(t, models.RoleStudent, "s1")
	request := submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	if _, err := svc.Reject(context.Background(), request.ID, "bad, reason"); err == nil {
		t.Error("comma in reason accepted")
	}
}

func TestListPendingExcludesDecidedRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addUser(t, models.RoleStudent, "s1")
	first := submitRequest(t, f, student.ID)
	submitRequest(t, f, student.ID)

	svc := NewRequestService(f.repo, f.logger, f.validator)
	if _, err := svc.Reject(ctx, first.ID, "withdrawn"); err != nil {
		t.Fatal(err)
	}
	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("pending = %d, want 1", len(pending))
	}
}
