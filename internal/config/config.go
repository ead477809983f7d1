// Package config loads and normalises landing-server configuration from a
// JSON or YAML file, a .env file and CONTRACTUALLY_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Its-donkey/contractually/internal/formspree"
)

const (
	defaultAddr            = "127.0.0.1"
	defaultPort            = ":4173"
	defaultSiteName        = "ContrActually"
	defaultSiteDescription = "ContrActually uses AI to decode complex terms & conditions and legal agreements. Get clear summaries, identify hidden risks, and save hours of review time."
	defaultTimeoutSeconds  = 12
	defaultVisitTTLSeconds = 3600
	defaultMaxVisits       = 10000
	defaultRateLimitRPS    = 0.5
	defaultRateLimitBurst  = 5
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 5

	envPrefix = "CONTRACTUALLY_"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	Port string `json:"port" yaml:"port"`
}

// Listen joins Addr and Port into a listen address.
func (s ServerConfig) Listen() string {
	port := strings.TrimSpace(s.Port)
	if port != "" && !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return strings.TrimSpace(s.Addr) + port
}

// SiteConfig holds the page metadata.
type SiteConfig struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	CanonicalURL string `json:"canonical_url" yaml:"canonical_url"`
}

// WaitlistConfig points at the form-collection endpoint.
type WaitlistConfig struct {
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout is the HTTP client timeout for the outbound request.
func (w WaitlistConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// VisitsConfig bounds the in-memory visit store.
type VisitsConfig struct {
	IdleTTLSeconds int `json:"idle_ttl_seconds" yaml:"idle_ttl_seconds"`
	MaxVisits      int `json:"max_visits" yaml:"max_visits"`
}

// IdleTTL is how long an untouched visit is kept.
func (v VisitsConfig) IdleTTL() time.Duration {
	return time.Duration(v.IdleTTLSeconds) * time.Second
}

// RateLimitConfig configures the per-client limiter on submit routes.
type RateLimitConfig struct {
	Enabled *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	RPS     float64 `json:"rps" yaml:"rps"`
	Burst   int     `json:"burst" yaml:"burst"`
}

// IsEnabled reports whether limiting is on; it defaults to true.
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// LoggingConfig configures the structured logger and its optional log file.
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`
	Dir        string `json:"dir" yaml:"dir"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// Config represents the combined runtime settings.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Site      SiteConfig      `json:"site" yaml:"site"`
	Waitlist  WaitlistConfig  `json:"waitlist" yaml:"waitlist"`
	Visits    VisitsConfig    `json:"visits" yaml:"visits"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr, Port: defaultPort},
		Site: SiteConfig{
			Name:        defaultSiteName,
			Description: defaultSiteDescription,
		},
		Waitlist: WaitlistConfig{
			Endpoint:       formspree.DefaultEndpoint,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Visits: VisitsConfig{
			IdleTTLSeconds: defaultVisitTTLSeconds,
			MaxVisits:      defaultMaxVisits,
		},
		RateLimit: RateLimitConfig{
			RPS:   defaultRateLimitRPS,
			Burst: defaultRateLimitBurst,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// Load reads the config file at path (JSON, or YAML for .yaml/.yml) on top of
// the defaults and then applies environment overrides. An empty path skips
// the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	normalise(&cfg)
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("ADDR", &cfg.Server.Addr)
	str("PORT", &cfg.Server.Port)
	str("SITE_NAME", &cfg.Site.Name)
	str("SITE_URL", &cfg.Site.CanonicalURL)
	str("WAITLIST_ENDPOINT", &cfg.Waitlist.Endpoint)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_DIR", &cfg.Logging.Dir)

	for key, dst := range map[string]*int{
		"WAITLIST_TIMEOUT_SECONDS": &cfg.Waitlist.TimeoutSeconds,
		"VISIT_TTL_SECONDS":        &cfg.Visits.IdleTTLSeconds,
		"MAX_VISITS":               &cfg.Visits.MaxVisits,
		"RATE_LIMIT_BURST":         &cfg.RateLimit.Burst,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(envPrefix + "RATE_LIMIT_RPS"); ok && strings.TrimSpace(v) != "" {
		rps, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_RPS: %w", envPrefix, err)
		}
		cfg.RateLimit.RPS = rps
	}
	if v, ok := lookup(envPrefix + "RATE_LIMIT_ENABLED"); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_ENABLED: %w", envPrefix, err)
		}
		cfg.RateLimit.Enabled = &enabled
	}
	return nil
}

func normalise(cfg *Config) {
	defaults := Default()
	if strings.TrimSpace(cfg.Server.Addr) == "" && strings.TrimSpace(cfg.Server.Port) == "" {
		cfg.Server = defaults.Server
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		cfg.Site.Name = defaults.Site.Name
	}
	if strings.TrimSpace(cfg.Site.Description) == "" {
		cfg.Site.Description = defaults.Site.Description
	}
	cfg.Site.CanonicalURL = strings.TrimSuffix(strings.TrimSpace(cfg.Site.CanonicalURL), "/")
	if strings.TrimSpace(cfg.Waitlist.Endpoint) == "" {
		cfg.Waitlist.Endpoint = defaults.Waitlist.Endpoint
	}
	if cfg.Waitlist.TimeoutSeconds <= 0 {
		cfg.Waitlist.TimeoutSeconds = defaults.Waitlist.TimeoutSeconds
	}
	if cfg.Visits.IdleTTLSeconds <= 0 {
		cfg.Visits.IdleTTLSeconds = defaults.Visits.IdleTTLSeconds
	}
	if cfg.Visits.MaxVisits <= 0 {
		cfg.Visits.MaxVisits = defaults.Visits.MaxVisits
	}
	if cfg.RateLimit.RPS <= 0 {
		cfg.RateLimit.RPS = defaults.RateLimit.RPS
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaults.RateLimit.Burst
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups <= 0 {
		cfg.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
}
