// Sayas is a speech rendering daemon that turns scripts of speech steps
// (text, numbers, prices, dates, pauses) into SSML documents for
// text-to-speech engines.
//
// Usage:
//
//	sayas [flags]
//	sayas --config /path/to/sayas.yaml
//	sayas --render script.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/nadzzz/sayas/internal/config"
	"github.com/nadzzz/sayas/internal/health"
	"github.com/nadzzz/sayas/internal/metrics"
	"github.com/nadzzz/sayas/internal/render"
	"github.com/nadzzz/sayas/internal/script"
	"github.com/nadzzz/sayas/internal/transport"
	grpctransport "github.com/nadzzz/sayas/internal/transport/grpc"
	httptransport "github.com/nadzzz/sayas/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/sayas.yaml)")
	renderFile := flag.String("render", "", "render a script file (JSON or YAML) to stdout and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sayas %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)

	// One-shot mode renders without starting any server.
	if *renderFile != "" {
		r := render.New(render.Options{Currency: cfg.Speech.Currency, MaxSteps: cfg.Speech.MaxSteps})
		if err := renderScript(context.Background(), r.Handle, *renderFile, os.Stdout); err != nil {
			slog.Error("render failed", "file", *renderFile, "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("sayas starting", "version", version)

	// Initialize Sentry for error reporting.
	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     "sayas@" + version,
		})
		if err != nil {
			slog.Warn("sentry init failed", "error", err)
		} else {
			slog.Info("sentry initialized", "environment", cfg.Sentry.Environment)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		m              *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		m = metrics.New()
		metricsHandler = m.Handler()
	}

	renderer := render.New(render.Options{
		Currency: cfg.Speech.Currency,
		MaxSteps: cfg.Speech.MaxSteps,
		Metrics:  m,
	})

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port))
	}

	if len(transports) == 0 {
		slog.Error("no transports enabled, enable at least one in config")
		os.Exit(1)
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, metricsHandler)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, renderer.Handle); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
				sentry.CaptureException(err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("sayas ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort,
		"currency", cfg.Speech.Currency.Plural)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")
	healthServer.SetReady(false)

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("sayas stopped")
}

// renderScript renders the script at path and writes the SSML to w.
func renderScript(ctx context.Context, handler transport.Handler, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	req, err := script.Parse(data, script.FormatFromPath(path))
	if err != nil {
		return err
	}
	if req.Source == "" {
		req.Source = path
	}

	result, err := handler(transport.WithName(ctx, "cli"), req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, result.SSML)
	return err
}
