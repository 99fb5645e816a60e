package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"portfolio-site/internal/buildlog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	// Server
	Port string `yaml:"port" validate:"required,numeric"`

	// Content
	ResumePath    string `yaml:"resume_path" validate:"required"`
	MergedLogPath string `yaml:"merged_log_path"`
	BuildID       string `yaml:"build_id"`

	// Static site
	BuildDir  string `yaml:"build_dir" validate:"required"`
	StaticDir string `yaml:"static_dir" validate:"required"`

	// PDF printing
	PrintPort    int           `yaml:"print_port" validate:"min=1,max=65535"`
	PDFBackend   string        `yaml:"pdf_backend" validate:"oneof=chromedp playwright"`
	ChromePath   string        `yaml:"chrome_path"`
	PrintTimeout time.Duration `yaml:"print_timeout" validate:"min=0"`

	// Print job storage; both empty keeps jobs in memory.
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	// Log viewer
	SearchDelay time.Duration `yaml:"search_delay" validate:"min=0"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
}

func defaults() *Config {
	return &Config{
		Port:         "3000",
		ResumePath:   "data/resume.json",
		BuildDir:     "build",
		StaticDir:    "static",
		PrintPort:    4173,
		PDFBackend:   "chromedp",
		PrintTimeout: 60 * time.Second,
		SearchDelay:  buildlog.DefaultSearchDelay,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load builds the configuration from defaults, an optional YAML file, a
// .env file and the process environment, in increasing precedence. An empty
// path means $SITE_CONFIG or config.yaml; a missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("SITE_CONFIG", defaultConfigPath)
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("config file not found, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.ResumePath = getEnv("RESUME_PATH", cfg.ResumePath)
	cfg.MergedLogPath = getEnv("MERGED_LOG_PATH", cfg.MergedLogPath)
	cfg.BuildID = getEnv("BUILD_ID", cfg.BuildID)
	cfg.BuildDir = getEnv("BUILD_DIR", cfg.BuildDir)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.PDFBackend = getEnv("PDF_BACKEND", cfg.PDFBackend)
	cfg.ChromePath = getEnv("CHROME_PATH", cfg.ChromePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if v := os.Getenv("PRINT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PRINT_PORT: %w", err)
		}
		cfg.PrintPort = port
	}
	if v := os.Getenv("PRINT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PRINT_TIMEOUT: %w", err)
		}
		cfg.PrintTimeout = d
	}
	if v := os.Getenv("SEARCH_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_DELAY: %w", err)
		}
		cfg.SearchDelay = d
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
