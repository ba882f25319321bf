package services

import (
	"context"
	"testing"

	"github.com/CCMS-2025/center-service/internal/events"
)

func TestServiceManagerWiresEverything(t *testing.T) {
	f := newFixture(t)
	manager := NewServiceManager(f.repo, f.logger, f.validator, events.NewMockEventPublisher(f.logger))

	if manager.Auth() == nil || manager.Registration() == nil || manager.Enrollment() == nil ||
		manager.Payment() == nil || manager.Attendance() == nil || manager.Grading() == nil ||
		manager.Query() == nil || manager.Request() == nil || manager.Chat() == nil ||
		manager.Feedback() == nil {
		t.Fatal("service manager returned a nil service")
	}

	if err := manager.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
