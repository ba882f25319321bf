package services

import (
	"context"
	"log/slog"

	"github.com/CCMS-2025/center-service/internal/repositories"
)

type authService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger) AuthService {
	return &authService{repo: repo, logger: logger}
}

// Authenticate scans the role tables in priority order and returns the
// first credential match with its role attached. A miss across all tables
// is a failed authentication, not an error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	account, err := s.repo.User().FindByCredentials(ctx, username, password)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Info("authentication failed", "username", username)
			return &AuthResult{Authenticated: false}, nil
		}
		return nil, err
	}
	s.logger.Info("authentication succeeded", "username", username, "role", account.Role)
	return &AuthResult{Authenticated: true, Account: account}, nil
}
