package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Its-donkey/contractually/internal/config"
	"github.com/Its-donkey/contractually/internal/formspree"
	"github.com/Its-donkey/contractually/internal/metrics"
	uiserver "github.com/Its-donkey/contractually/internal/ui/server"
	"github.com/Its-donkey/contractually/internal/visit"
	"github.com/Its-donkey/contractually/logging"
)

type flags struct {
	configPath string
	envPath    string
	listen     string
	endpoint   string
	logDir     string
	logLevel   string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		// A second signal skips graceful shutdown.
		<-sigCh
		log.Println("second interrupt received, forcing shutdown")
		os.Exit(1)
	}()
	defer func() {
		signal.Stop(sigCh)
		cancel()
	}()

	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to config.json or config.yaml (optional)")
	flag.StringVar(&f.envPath, "env", ".env", "path to a .env file with CONTRACTUALLY_* overrides")
	flag.StringVar(&f.listen, "listen", "", "address to serve the landing page (defaults to server.addr+port)")
	flag.StringVar(&f.endpoint, "endpoint", "", "form-collection endpoint for waitlist signups")
	flag.StringVar(&f.logDir, "log-dir", "", "directory for the rotated log file (stdout only when empty)")
	flag.StringVar(&f.logLevel, "log-level", "", "minimum log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(ctx, f); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, f flags) error {
	if err := config.LoadDotEnv(f.envPath); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyFlags(cfg, f)

	logger, closeLog, err := newLogger(cfg.Site.Name, cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := formspree.NewClient(cfg.Waitlist.Endpoint, &http.Client{Timeout: cfg.Waitlist.Timeout()})
	if err != nil {
		return fmt.Errorf("waitlist endpoint: %w", err)
	}

	m := metrics.New()
	return uiserver.Run(ctx, uiserver.Options{
		Listen:    listenAddress(cfg, f),
		Site:      cfg.Site,
		Submitter: m.InstrumentSubmitter(client),
		Logger:    logger,
		Metrics:   m,
		Visits: visit.Options{
			IdleTTL:   cfg.Visits.IdleTTL(),
			MaxVisits: cfg.Visits.MaxVisits,
		},
		RateLimit: cfg.RateLimit,
	})
}

// applyFlags lets command-line values win over file and environment config.
func applyFlags(cfg config.Config, f flags) config.Config {
	if v := strings.TrimSpace(f.endpoint); v != "" {
		cfg.Waitlist.Endpoint = v
	}
	if v := strings.TrimSpace(f.logDir); v != "" {
		cfg.Logging.Dir = v
	}
	if v := strings.TrimSpace(f.logLevel); v != "" {
		cfg.Logging.Level = v
	}
	return cfg
}

func listenAddress(cfg config.Config, f flags) string {
	if listen := strings.TrimSpace(f.listen); listen != "" {
		return listen
	}
	return cfg.Server.Listen()
}

// newLogger writes to stdout and, when a directory is configured, to a
// rotated log file as well.
func newLogger(site string, cfg config.LoggingConfig) (*logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	writers := []io.Writer{os.Stdout}
	closeFn := func() {}
	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		fw, err := logging.NewFileWriter(dir, "landing.log", cfg.MaxSizeMB, cfg.MaxBackups)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, fw)
		closeFn = func() { _ = fw.Close() }
	}
	return logging.New(site, level, writers...), closeFn, nil
}
