package validator

import (
	"testing"

	"github.com/CCMS-2025/center-service/internal/models"
)

func TestValidateRegister(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     RegisterUserRequest
		wantErr bool
	}{
		{
			"valid student",
			RegisterUserRequest{Username: "sam", Password: "pass1234", Role: models.RoleStudent, FullName: "Sam Smith"},
			false,
		},
		{
			"valid tutor",
			RegisterUserRequest{Username: "jane", Password: "pass1234", Role: models.RoleTutor, FullName: "Jane Doe", Specialization: "Math"},
			false,
		},
		{
			"tutor without specialization",
			RegisterUserRequest{Username: "jane", Password: "pass1234", Role: models.RoleTutor, FullName: "Jane Doe"},
			true,
		},
		{
			"unknown role",
			RegisterUserRequest{Username: "sam", Password: "pass1234", Role: "janitor", FullName: "Sam"},
			true,
		},
		{
			"short username",
			RegisterUserRequest{Username: "ab", Password: "pass1234", Role: models.RoleStudent, FullName: "Sam"},
			true,
		},
		{
			"comma in full name",
			RegisterUserRequest{Username: "sam", Password: "pass1234", Role: models.RoleStudent, FullName: "Smith, Sam"},
			true,
		},
		{
			"semicolon in username",
			RegisterUserRequest{Username: "sam;1", Password: "pass1234", Role: models.RoleStudent, FullName: "Sam"},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateRegister(&tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateSendMessageDestination(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr bool
	}{
		{"direct", SendMessageRequest{Sender: "s1", Recipient: "t1", Content: "hi"}, false},
		{"group", SendMessageRequest{Sender: "s1", GroupID: "2", Content: "hi"}, false},
		{"neither", SendMessageRequest{Sender: "s1", Content: "hi"}, true},
		{"both", SendMessageRequest{Sender: "s1", Recipient: "t1", GroupID: "2", Content: "hi"}, true},
		{"comma allowed in content", SendMessageRequest{Sender: "s1", Recipient: "t1", Content: "hi, there"}, false},
		{"pipe banned in content", SendMessageRequest{Sender: "s1", Recipient: "t1", Content: "a|b"}, true},
		{"newline banned in content", SendMessageRequest{Sender: "s1", Recipient: "t1", Content: "a\nb"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateSendMessage(&tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorsCarryFieldAndRule(t *testing.T) {
	v := New()
	errs := v.Validate(&SubmitFeedbackRequest{
		SubmitterID: "s1",
		TargetRole:  models.RoleTutor,
		TargetID:    "t1",
		Subject:     "teaching",
		Rating:      9,
		Content:     "remarks",
	})
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want exactly the rating violation", errs)
	}
	if errs[0].Field != "rating" || errs[0].Rule != "max" {
		t.Errorf("error = %+v", errs[0])
	}
}
