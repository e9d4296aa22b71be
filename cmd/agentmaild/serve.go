// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/agentmail/archive"
	"github.com/sage-x-project/agentmail/config"
	"github.com/sage-x-project/agentmail/core"
	"github.com/sage-x-project/agentmail/frontier"
	"github.com/sage-x-project/agentmail/observability/logging"
	"github.com/sage-x-project/agentmail/observability/metrics"
	"github.com/sage-x-project/agentmail/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent-mail coordination daemon",
	Long: `Start the HTTP/WebSocket server that exposes the agent-mail
tool surface: ensure_project, register_agent, send_message and its
inbox/thread operations, file reservations, build slots, contacts, and
macros (spec.md §6 "REST shape").

Configuration can be provided via:
  - config.yaml (or .json) file
  - Environment variables (AGENTMAIL_*)
  - Command-line flags (highest priority)

Example:
  agentmaild serve
  agentmaild serve --config ./agentmail-data/config.yaml
  agentmaild serve --port 9000 --host 0.0.0.0`,
	RunE: runServe,
}

var (
	serveConfig string
	servePort   int
	serveHost   string
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "config.yaml", "Path to configuration file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Server port (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Server host (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(serveConfig)
	if err != nil {
		return withExitCode(exitUsage, err)
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return withExitCode(exitInternal, fmt.Errorf("build logger: %w", err))
	}

	pg := store.PostgresDSN{
		Host:     cfg.Store.Postgres.Host,
		Port:     cfg.Store.Postgres.Port,
		User:     cfg.Store.Postgres.User,
		Password: cfg.Store.Postgres.Password,
		Database: cfg.Store.Postgres.Database,
		SSLMode:  cfg.Store.Postgres.SSLMode,
	}
	backend := store.BackendSQLite
	if cfg.Store.Backend == "postgres" {
		backend = store.BackendPostgres
	}

	s, err := store.Open(cfg.Store.DataDir, backend, pg)
	if err != nil {
		return withExitCode(exitMigration, fmt.Errorf("open store: %w", err))
	}
	defer s.Close()

	arc, err := archive.Open(cfg.Store.DataDir, cfg.Archive.CommitAuthorName, cfg.Archive.CommitAuthorEmail)
	if err != nil {
		return withExitCode(exitDataDir, fmt.Errorf("open archive: %w", err))
	}

	// Collection always runs; cfg.Metrics.Enabled only gates whether the
	// /metrics HTTP exposition listener is started below.
	collector := metrics.NewPrometheusCollector()
	toolMetrics := metrics.NewToolMetrics(collector)

	c := core.New(s, arc, logger, toolMetrics)
	c.ReservationDefaultTTL = time.Duration(cfg.ReservationDefaultTTLSeconds) * time.Second
	c.ReservationMaxTTL = time.Duration(cfg.ReservationMaxTTLSeconds) * time.Second
	c.BuildSlotDefaultTTL = time.Duration(cfg.BuildSlotDefaultTTLSeconds) * time.Second
	c.BuildSlotMaxTTL = time.Duration(cfg.BuildSlotMaxTTLSeconds) * time.Second

	fr, err := frontier.New(c, cfg, logger, toolMetrics)
	if err != nil {
		return withExitCode(exitInternal, fmt.Errorf("build tool frontier: %w", err))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", fr.StreamHandler)
	mux.Handle("/", fr.Router(nil))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mm := http.NewServeMux()
		mm.Handle(cfg.Metrics.Path, collector.Handler())
		metricsSrv = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Metrics.Port), Handler: mm}
	}

	log.Printf("agentmaild listening on http://%s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()
	if metricsSrv != nil {
		go func() {
			log.Printf("agentmaild metrics listening on http://%s%s", metricsSrv.Addr, cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server error: %v", err)
			}
		}()
	}

	select {
	case <-sigChan:
		log.Println("shutdown signal received, stopping agentmaild...")
	case err := <-errChan:
		return withExitCode(exitServiceUnavail, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return withExitCode(exitInternal, fmt.Errorf("graceful shutdown: %w", err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}

	log.Println("agentmaild stopped")
	return nil
}

// loadConfig loads configuration from path, falling back to defaults
// plus environment overrides when the file does not exist (the daemon
// must still start against a freshly `init`-ed data directory with no
// config.yaml written yet).
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("config file not found: %s, using defaults", path)
		cfg := config.DefaultConfig()
		if err := cfg.LoadEnv(); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger builds the Logger the teacher's observability stack offers
// for cfg.Logging.Format: zap for "json" (structured production
// logging), the lightweight StructuredLogger otherwise.
func newLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	level := parseLevel(cfg.Level)
	if cfg.Format == "json" {
		return logging.NewZapLogger(level, cfg.Format)
	}
	return logging.NewStructuredLogger(level), nil
}

func parseLevel(level string) logging.Level {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	case "fatal":
		return logging.LevelFatal
	default:
		return logging.LevelInfo
	}
}
