package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`         // current application environment (local, dev, production etc)
	TelegramAPIToken string      `mapstructure:"-"`           // Telegram API token loaded from environment
	Bot              Bot         `mapstructure:"bot"`         // update processing
	API              API         `mapstructure:"api"`         // TalUp backend client section
	Lesson           Lesson      `mapstructure:"lesson"`      // lesson screen behaviour
	Leaderboard      Leaderboard `mapstructure:"leaderboard"` // leaderboard rendering
	DB               DB          `mapstructure:"database"`    // database configuration section
}

// Bot contains update processing parameters.
type Bot struct {
	Workers int `mapstructure:"workers"` // users served concurrently
}

// API contains TalUp backend client parameters.
type API struct {
	BaseURL    string        `mapstructure:"-"`           // backend base URL loaded from environment
	Timeout    time.Duration `mapstructure:"timeout"`     // per-request timeout
	MaxRetries int           `mapstructure:"max_retries"` // retries for idempotent requests
}

// Lesson contains lesson screen parameters.
type Lesson struct {
	PollInterval    time.Duration `mapstructure:"poll_interval"`    // profile refresh period while a lesson is open
	AnimateProgress bool          `mapstructure:"animate_progress"` // animate the progress bar with a few message edits
}

// Leaderboard contains leaderboard rendering parameters.
type Leaderboard struct {
	Size int `mapstructure:"size"` // number of rows shown
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Local .env is optional; real environment wins over it.
	_ = godotenv.Load()

	return load(viper.New(), "./config")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("bot.workers", 16)
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.max_retries", 2)
	v.SetDefault("lesson.poll_interval", "10s")
	v.SetDefault("lesson.animate_progress", false)
	v.SetDefault("leaderboard.size", 10)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("talup_api_url", "TALUP_API_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.API.BaseURL = strings.TrimRight(v.GetString("talup_api_url"), "/")
	if cfg.API.BaseURL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
