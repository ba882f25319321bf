package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/CCMS-2025/center-service/internal/models"
)

// ValidationError is one failed rule on one field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) HasErrors() bool { return len(e) > 0 }

// Validator wraps go-playground struct validation plus business rules the
// tags cannot express.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerRules()
	return v
}

// Validate runs tag-level validation for any request struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

// ValidateRegister adds the role-specific rule tags cannot carry: tutors
// must declare a specialization, other roles must not.
func (v *Validator) ValidateRegister(req *RegisterUserRequest) ValidationErrors {
	errs := v.Validate(req)
	if req.Role == models.RoleTutor && strings.TrimSpace(req.Specialization) == "" {
		errs = append(errs, ValidationError{
			Field:   "specialization",
			Message: "tutors must declare a specialization",
			Rule:    "business_logic",
		})
	}
	return errs
}

// ValidateSendMessage requires exactly one destination: a recipient for a
// direct message or a group id for a group message.
func (v *Validator) ValidateSendMessage(req *SendMessageRequest) ValidationErrors {
	errs := v.Validate(req)
	direct := req.Recipient != ""
	group := req.GroupID != ""
	if direct == group {
		errs = append(errs, ValidationError{
			Field:   "recipient",
			Message: "exactly one of recipient or group_id must be set",
			Rule:    "business_logic",
		})
	}
	return errs
}

func (v *Validator) registerRules() {
	v.validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	v.validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseAttendanceStatus(fl.Field().String())
		return err == nil
	})
	// Field values become delimited-file fields with no escaping, so the
	// separators and line breaks are banned outright.
	v.validate.RegisterValidation("plain_field", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), ",|;\r\n")
	})
	// Message content lives in a pipe-separated file, so commas are fine
	// there; only the pipe and line breaks are off limits.
	v.validate.RegisterValidation("pipe_field", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "|\r\n")
	})
}

func toValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "struct"}}
	}
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "role":
		return "is not a known role"
	case "attendance_status":
		return "is not a known attendance status"
	case "plain_field":
		return "must not contain separators or line breaks"
	case "pipe_field":
		return "must not contain pipes or line breaks"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
