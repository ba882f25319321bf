package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/CCMS-2025/center-service/internal/repositories"
)

// Config is the whole process configuration. Paths are injected into the
// store constructors so tests can point fixtures at isolated directories.
type Config struct {
	// DataDir holds one flat file per table plus the counter file.
	DataDir string `env:"CENTER_DATA_DIR" envDefault:"data"`
	// BackupDir receives dated backup folders; empty means DataDir/backups.
	BackupDir string `env:"CENTER_BACKUP_DIR"`

	// CascadePolicy is what a course delete does with dependent
	// enrollments: keep, cascade or block.
	CascadePolicy string `env:"CENTER_CASCADE_POLICY" envDefault:"keep"`

	// PollInterval paces the unread-activity refresh.
	PollInterval time.Duration `env:"CENTER_POLL_INTERVAL" envDefault:"5s"`

	LogLevel string `env:"CENTER_LOG_LEVEL" envDefault:"info"`
	// LogFile enables rotating file output next to stdout when set.
	LogFile string `env:"CENTER_LOG_FILE"`
}

// LoadConfig reads .env if present, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Cascade(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Cascade() (repositories.CascadePolicy, error) {
	switch p := repositories.CascadePolicy(c.CascadePolicy); p {
	case repositories.CascadeKeep, repositories.CascadeDelete, repositories.CascadeBlock:
		return p, nil
	}
	return "", fmt.Errorf("unknown cascade policy %q", c.CascadePolicy)
}

func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
