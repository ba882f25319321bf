package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/CCMS-2025/center-service/internal/config"
	"github.com/CCMS-2025/center-service/internal/events"
	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/repositories/flatfile"
	"github.com/CCMS-2025/center-service/internal/services"
	"github.com/CCMS-2025/center-service/internal/validator"
	"github.com/CCMS-2025/center-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := pkg.NewLogger(cfg)

	cascade, err := cfg.Cascade()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	repo, err := flatfile.NewFlatFileRepository(flatfile.Config{
		DataDir:   cfg.DataDir,
		BackupDir: cfg.BackupDir,
		Cascade:   cascade,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer repo.Close()

	publisher := events.NewGoChannelPublisher(logger)
	v := validator.New()
	manager := services.NewServiceManager(repo, logger, v, publisher)
	defer manager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := manager.HealthCheck(ctx); err != nil {
		log.Fatalf("Store not usable: %v", err)
	}
	logger.Info("center store ready", "data_dir", cfg.DataDir, "cascade", string(cascade))

	// Watch every known account for unread activity until shutdown.
	usernames, err := watchedUsernames(ctx, repo)
	if err != nil {
		log.Fatalf("Failed to list accounts: %v", err)
	}
	poller := manager.Chat().NewUnreadPoller(usernames, cfg.PollInterval)
	poller.Run(ctx)

	logger.Info("shutting down")
}

func watchedUsernames(ctx context.Context, repo *flatfile.FlatFileRepository) ([]string, error) {
	var usernames []string
	for _, role := range models.RolePriority {
		accounts, err := repo.User().List(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			usernames = append(usernames, a.Username)
		}
	}
	return usernames, nil
}
