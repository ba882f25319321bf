package services

import (
	"context"
	"testing"

	"github.com/CCMS-2025/center-service/internal/models"
)

func TestAuthenticateMatchesCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, models.RoleStudent, "sam")

	svc := NewAuthService(f.repo, f.logger)
	result, err := svc.Authenticate(ctx, "sam", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !result.Authenticated || result.Account == nil || result.Account.Role != models.RoleStudent {
		t.Errorf("result = %+v", result)
	}
}

func TestAuthenticateFailureIsNotAnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, models.RoleStudent, "sam")

	svc := NewAuthService(f.repo, f.logger)
	for _, tt := range []struct{ username, password string }{
		{"sam", "wrong"},
		{"ghost", "secret"},
	} {
		result, err := svc.Authenticate(ctx, tt.username, tt.password)
		if err != nil {
			t.Errorf("Authenticate(%s): unexpected error %v", tt.username, err)
			continue
		}
		if result.Authenticated || result.Account != nil {
			t.Errorf("Authenticate(%s) = %+v, want failed result", tt.username, result)
		}
	}
}

func TestAuthenticatePrefersHigherRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, models.RoleStudent, "shared")
	f.addUser(t, models.RoleAdmin, "shared")

	result, err := NewAuthService(f.repo, f.logger).Authenticate(ctx, "shared", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Authenticated || result.Account.Role != models.RoleAdmin {
		t.Errorf("matched role = %v, want admin first", result.Account)
	}
}

func TestRegisterTutorRequiresSpecialization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRegistrationService(f.repo, f.logger, f.validator)

	_, err := svc.Register(ctx, &RegisterUserRequest{
		Username: "newtutor", Password: "pass1234", Role: models.RoleTutor, FullName: "New Tutor",
	})
	if err == nil {
		t.Fatal("tutor without specialization registered")
	}

	account, err := svc.Register(ctx, &RegisterUserRequest{
		Username: "newtutor", Password: "pass1234", Role: models.RoleTutor,
		FullName: "New Tutor", Specialization: "Chemistry",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.ID != "TUT-201" || account.Specialization != "Chemistry" {
		t.Errorf("account = %+v", account)
	}
}

func TestRegisterRejectsSeparatorsInFields(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationService(f.repo, f.logger, f.validator)

	_, err := svc.Register(context.Background(), &RegisterUserRequest{
		Username: "bad,name", Password: "pass1234", Role: models.RoleStudent, FullName: "Bad Name",
	})
	if err == nil {
		t.Error("comma in username accepted")
	}
}
