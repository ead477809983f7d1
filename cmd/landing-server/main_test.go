package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Its-donkey/contractually/internal/config"
	"github.com/Its-donkey/contractually/logging"
)

func TestApplyFlags(t *testing.T) {
	cfg := applyFlags(config.Default(), flags{
		endpoint: " https://formspree.io/f/other ",
		logDir:   "logs",
		logLevel: "debug",
	})
	if cfg.Waitlist.Endpoint != "https://formspree.io/f/other" {
		t.Fatalf("unexpected endpoint %q", cfg.Waitlist.Endpoint)
	}
	if cfg.Logging.Dir != "logs" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}

	untouched := applyFlags(config.Default(), flags{})
	if untouched.Waitlist.Endpoint != config.Default().Waitlist.Endpoint {
		t.Fatalf("expected empty flags to keep config values")
	}
}

func TestListenAddress(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name   string
		listen string
		want   string
	}{
		{name: "config", listen: "", want: cfg.Server.Listen()},
		{name: "flag", listen: "0.0.0.0:8080", want: "0.0.0.0:8080"},
		{name: "ipv6 flag", listen: "[::1]:9000", want: "[::1]:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listenAddress(cfg, flags{listen: tt.listen}); got != tt.want {
				t.Fatalf("listenAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLoggerWithFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeLog, err := newLogger("ContrActually", config.LoggingConfig{Level: "info", Dir: dir})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("general", "hello", nil)
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, "landing.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log output in file")
	}
	if !logger.Enabled(logging.INFO) || logger.Enabled(logging.DEBUG) {
		t.Fatalf("expected info level logger")
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, _, err := newLogger("", config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
