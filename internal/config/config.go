package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	TokenSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	ManagerEmail    string
	TTOEmail        string
	EngineerEmail   string
	FrontendBaseURL string

	NotifyTimeout   time.Duration
	NotifyWorkers   int
	NotifyQueueSize int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultTokenSecret     = "change-me-in-production"
	defaultManagerEmail    = "manager@sltelecom.lk"
	defaultTTOEmail        = "slttto@gmail.com"
	defaultEngineerEmail   = "engineerslt38@gmail.com"
	defaultFrontendBaseURL = "http://localhost:3001"
	defaultNotifyTimeout   = 15 * time.Second
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 64
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		SMTPHost:        getString(lookup, "SMTP_HOST", ""),
		SMTPPort:        getString(lookup, "SMTP_PORT", "587"),
		SMTPUsername:    getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:    getString(lookup, "SMTP_PASSWORD", ""),
		SMTPFrom:        getString(lookup, "SMTP_FROM", ""),
		ManagerEmail:    getString(lookup, "MANAGER_EMAIL", defaultManagerEmail),
		TTOEmail:        getString(lookup, "TTO_EMAIL", defaultTTOEmail),
		EngineerEmail:   getString(lookup, "ENGINEER_EMAIL", defaultEngineerEmail),
		FrontendBaseURL: getString(lookup, "FRONTEND_BASE_URL", defaultFrontendBaseURL),
		NotifyTimeout:   getDuration(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize: getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("tireflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		notifyTimeoutStr   = cfg.NotifyTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.ManagerEmail, "manager-email", cfg.ManagerEmail, "Manager stage recipient")
	fs.StringVar(&cfg.TTOEmail, "tto-email", cfg.TTOEmail, "TTO stage recipient")
	fs.StringVar(&cfg.EngineerEmail, "engineer-email", cfg.EngineerEmail, "Engineer stage recipient")
	fs.StringVar(&cfg.FrontendBaseURL, "frontend-url", cfg.FrontendBaseURL, "Base URL for dashboard deep links")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification senders")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Pending notification queue capacity")
	fs.StringVar(&notifyTimeoutStr, "notify-timeout", notifyTimeoutStr, "Timeout per notification send")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.NotifyTimeout, err = time.ParseDuration(notifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
