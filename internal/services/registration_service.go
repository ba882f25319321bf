package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories"
	"github.com/CCMS-2025/center-service/internal/validator"
)

type registrationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRegistrationService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) RegistrationService {
	return &registrationService{repo: repo, logger: logger, validator: v}
}

func (s *registrationService) Register(ctx context.Context, req *RegisterUserRequest) (*models.UserAccount, error) {
	if errs := s.validator.ValidateRegister(req); errs.HasErrors() {
		return nil, fmt.Errorf("register %s: %w", req.Role, errs)
	}

	account := &models.UserAccount{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		FullName: req.FullName,
	}
	if req.Role == models.RoleTutor {
		account.Specialization = req.Specialization
	}
	if err := s.repo.User().Create(ctx, account); err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Role, err)
	}
	s.logger.Info("registered account", "role", account.Role, "id", account.ID, "username", account.Username)
	return account, nil
}
