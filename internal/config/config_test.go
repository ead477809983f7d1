package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen() != "127.0.0.1:4173" {
		t.Fatalf("unexpected listen address %q", cfg.Server.Listen())
	}
	if cfg.Waitlist.Endpoint != "https://formspree.io/f/mvgkdakn" {
		t.Fatalf("unexpected endpoint %q", cfg.Waitlist.Endpoint)
	}
	if !cfg.RateLimit.IsEnabled() {
		t.Fatalf("expected rate limiting to default on")
	}
	if cfg.Visits.IdleTTL().Hours() != 1 {
		t.Fatalf("unexpected visit ttl %v", cfg.Visits.IdleTTL())
	}
}

func TestLoadJSONOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"server": {"addr": "0.0.0.0", "port": "8080"},
		"site": {"canonical_url": "https://contractually.example/"},
		"waitlist": {"endpoint": "https://formspree.io/f/other", "timeout_seconds": 3},
		"rate_limit": {"enabled": false},
		"logging": {"level": "debug", "dir": "logs"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen() != "0.0.0.0:8080" {
		t.Fatalf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Site.CanonicalURL != "https://contractually.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Site.CanonicalURL)
	}
	if cfg.Site.Name != "ContrActually" {
		t.Fatalf("expected default site name to survive, got %q", cfg.Site.Name)
	}
	if cfg.Waitlist.Endpoint != "https://formspree.io/f/other" || cfg.Waitlist.Timeout().Seconds() != 3 {
		t.Fatalf("waitlist overrides not applied: %+v", cfg.Waitlist)
	}
	if cfg.RateLimit.IsEnabled() {
		t.Fatalf("expected rate limiting disabled")
	}
	if cfg.RateLimit.Burst != 5 {
		t.Fatalf("expected default burst, got %d", cfg.RateLimit.Burst)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Dir != "logs" || cfg.Logging.MaxBackups != 5 {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server:\n  port: \":9000\"\nvisits:\n  idle_ttl_seconds: 60\n  max_visits: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen() != "127.0.0.1:9000" {
		t.Fatalf("unexpected listen %q", cfg.Server.Listen())
	}
	if cfg.Visits.IdleTTLSeconds != 60 || cfg.Visits.MaxVisits != 10 {
		t.Fatalf("visit overrides not applied: %+v", cfg.Visits)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte("{"), 0o644)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "decode config") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CONTRACTUALLY_PORT", "7000")
	t.Setenv("CONTRACTUALLY_WAITLIST_ENDPOINT", "https://formspree.io/f/env")
	t.Setenv("CONTRACTUALLY_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CONTRACTUALLY_RATE_LIMIT_ENABLED", "false")
	t.Setenv("CONTRACTUALLY_MAX_VISITS", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen() != "127.0.0.1:7000" {
		t.Fatalf("unexpected listen %q", cfg.Server.Listen())
	}
	if cfg.Waitlist.Endpoint != "https://formspree.io/f/env" {
		t.Fatalf("unexpected endpoint %q", cfg.Waitlist.Endpoint)
	}
	if cfg.RateLimit.RPS != 2.5 || cfg.RateLimit.IsEnabled() {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Visits.MaxVisits != 42 {
		t.Fatalf("unexpected max visits %d", cfg.Visits.MaxVisits)
	}
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	lookup := func(key string) (string, bool) {
		if key == "CONTRACTUALLY_MAX_VISITS" {
			return "lots", true
		}
		return "", false
	}
	if err := applyEnv(&cfg, lookup); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CONTRACTUALLY_SITE_NAME=FromDotEnv\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("CONTRACTUALLY_SITE_NAME", "")
	os.Unsetenv("CONTRACTUALLY_SITE_NAME")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Name != "FromDotEnv" {
		t.Fatalf("expected site name from .env, got %q", cfg.Site.Name)
	}
}
