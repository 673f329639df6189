package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string

	ScrapeTimeout   time.Duration
	ScrapeHostDelay time.Duration
	ScrapeWorkers   int
	MaxCompanies    int
	MaxAttachmentMB int
	RateLimitLeads  RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUser:        os.Getenv("EMAIL_USER"),
		SMTPPassword:    os.Getenv("EMAIL_PASSWORD"),
		ScrapeTimeout:   parseDuration(getEnv("SCRAPE_TIMEOUT", "10s"), 10*time.Second),
		ScrapeHostDelay: parseDuration(getEnv("SCRAPE_HOST_DELAY", "1s"), time.Second),
		ScrapeWorkers:   parseInt(getEnv("SCRAPE_WORKERS", "4"), 4),
		MaxCompanies:    parseInt(getEnv("MAX_COMPANIES", "50"), 50),
		MaxAttachmentMB: parseInt(getEnv("MAX_ATTACHMENT_MB", "10"), 10),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_LEADS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LEADS value: %w", err)
	}
	cfg.RateLimitLeads = rl

	if cfg.ScrapeWorkers <= 0 {
		cfg.ScrapeWorkers = 1
	}
	if cfg.MaxCompanies <= 0 || cfg.MaxCompanies > 50 {
		cfg.MaxCompanies = 50
	}

	return cfg, nil
}

// MailboxConfigured reports whether the SMTP relay credentials are complete.
func (c *Config) MailboxConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return n
}
