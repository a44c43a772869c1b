package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://localhost/talup")
	t.Setenv("TALUP_API_URL", "http://localhost:8080/")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "local" {
		t.Fatalf("env = %q, want local", cfg.Env)
	}
	if cfg.Lesson.PollInterval != 10*time.Second {
		t.Fatalf("poll interval = %v, want 10s", cfg.Lesson.PollInterval)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("api timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("base url = %q, trailing slash must be trimmed", cfg.API.BaseURL)
	}
	if cfg.Leaderboard.Size != 10 {
		t.Fatalf("leaderboard size = %d, want 10", cfg.Leaderboard.Size)
	}
	if cfg.Bot.Workers != 16 {
		t.Fatalf("workers = %d, want 16", cfg.Bot.Workers)
	}
	dsn, err := cfg.DB.DSN()
	if err != nil || dsn != "postgres://localhost/talup" {
		t.Fatalf("dsn = %q, %v", dsn, err)
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	yaml := []byte("env: production\nlesson:\n  poll_interval: 30s\n  animate_progress: true\nleaderboard:\n  size: 5\nbot:\n  workers: 4\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "production" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.Lesson.PollInterval != 30*time.Second || !cfg.Lesson.AnimateProgress {
		t.Fatalf("lesson = %+v", cfg.Lesson)
	}
	if cfg.Leaderboard.Size != 5 {
		t.Fatalf("leaderboard size = %d", cfg.Leaderboard.Size)
	}
	if cfg.Bot.Workers != 4 {
		t.Fatalf("workers = %d", cfg.Bot.Workers)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "telegram token", unset: "TELEGRAM_API_TOKEN"},
		{name: "database url", unset: "DATABASE_URL"},
		{name: "api url", unset: "TALUP_API_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := load(viper.New(), t.TempDir())
			if !errors.Is(err, ErrMissingEnvironmentVariables) {
				t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
			}
		})
	}
}
