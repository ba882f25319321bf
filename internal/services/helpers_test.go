package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/repositories/flatfile"
	"github.com/CCMS-2025/center-service/internal/validator"
)

// fixture wires a real flat-file repository in a temp directory so the
// services are exercised against the same storage they run on in
// production.
type fixture struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := flatfile.NewFlatFileRepository(flatfile.Config{DataDir: t.TempDir()}, logger)
	if err != nil {
		t.Fatalf("flat-file repository: %v", err)
	}
	return &fixture{repo: repo, logger: logger, validator: validator.New()}
}

func (f *fixture) addUser(t *testing.T, role models.Role, username string) *models.UserAccount {
	t.Helper()
	account := &models.UserAccount{
		Username: username,
		Password: "secret",
		Role:     role,
		FullName: "Test " + username,
	}
	if role == models.RoleTutor {
		account.Specialization = "Mathematics"
	}
	if err := f.repo.User().Create(context.Background(), account); err != nil {
		t.Fatalf("create %s %s: %v", role, username, err)
	}
	return account
}

func (f *fixture) addCourse(t *testing.T, name, tutorID, level, subject string, fee float64) *models.Course {
	t.Helper()
	course := &models.Course{Name: name, TutorID: tutorID, Level: level, Subject: subject, Fee: fee}
	if err := f.repo.Course().Create(context.Background(), course); err != nil {
		t.Fatalf("create course %s: %v", name, err)
	}
	return course
}

func (f *fixture) enroll(t *testing.T, studentID string, courseIDs ...string) []*models.Enrollment {
	t.Helper()
	svc := NewEnrollmentService(f.repo, f.logger, f.validator)
	enrollments, err := svc.Enroll(context.Background(), &EnrollRequest{StudentID: studentID, CourseIDs: courseIDs})
	if err != nil {
		t.Fatalf("enroll %s: %v", studentID, err)
	}
	return enrollments
}

func (f *fixture) pay(t *testing.T, enrollmentID string, amount float64) *models.Receipt {
	t.Helper()
	svc := NewPaymentService(f.repo, f.logger, f.validator)
	receipt, err := svc.Accept(context.Background(), &AcceptPaymentRequest{EnrollmentID: enrollmentID, Amount: amount})
	if err != nil {
		t.Fatalf("pay %.2f on %s: %v", amount, enrollmentID, err)
	}
	return receipt
}
