package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SCRAPE_TIMEOUT", "3s")
	t.Setenv("SCRAPE_HOST_DELAY", "250ms")
	t.Setenv("RATE_LIMIT_LEADS", "10/min")
	t.Setenv("MAX_COMPANIES", "25")
	t.Setenv("MAX_ATTACHMENT_MB", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.GeminiAPIKey != "test-key" {
		t.Fatalf("unexpected config values: %+v", cfg)
	}
	if cfg.ScrapeTimeout != 3*time.Second || cfg.ScrapeHostDelay != 250*time.Millisecond {
		t.Fatalf("unexpected scrape timings: %+v", cfg)
	}
	if cfg.MaxCompanies != 25 {
		t.Fatalf("expected max companies 25, got %d", cfg.MaxCompanies)
	}
	if cfg.MaxAttachmentMB != 5 {
		t.Fatalf("expected max attachment 5MB, got %d", cfg.MaxAttachmentMB)
	}
	if cfg.RateLimitLeads.Requests != 10 || cfg.RateLimitLeads.Interval != time.Minute {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimitLeads)
	}

	t.Setenv("RATE_LIMIT_LEADS", "xyz")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid rate limit")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_COMPANIES", "500")
	t.Setenv("SCRAPE_WORKERS", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCompanies != 50 {
		t.Fatalf("expected max companies clamped to 50, got %d", cfg.MaxCompanies)
	}
	if cfg.ScrapeWorkers != 1 {
		t.Fatalf("expected workers clamped to 1, got %d", cfg.ScrapeWorkers)
	}
}

func TestParseRateLimit(t *testing.T) {
	cfg, err := parseRateLimit("5/sec")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Requests != 5 || cfg.Interval != time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	cases := []string{"", "5", "0/min", "abc/min", "5/fortnight"}
	for _, input := range cases {
		if _, err := parseRateLimit(input); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestMailboxConfigured(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.example.com", SMTPUser: "bot@example.com", SMTPPassword: "secret"}
	if !cfg.MailboxConfigured() {
		t.Fatalf("expected mailbox configured")
	}
	cfg.SMTPPassword = ""
	if cfg.MailboxConfigured() {
		t.Fatalf("expected mailbox not configured without password")
	}
}
