package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/api"
	"github.com/fyrsmithlabs/flowmock/internal/config"
	"github.com/fyrsmithlabs/flowmock/internal/logging"
	"github.com/fyrsmithlabs/flowmock/internal/seed"
	"github.com/fyrsmithlabs/flowmock/internal/store"
)

var (
	flagConfig     string
	flagInstanceID string
	flagHost       string
	flagPort       int
	flagSeed       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock API server",
	Long: `Start the mock API server bound to one instance id.

Configuration precedence, lowest to highest: built-in defaults, config
file (--config), environment variables (SERVER_PORT, INSTANCE_ID, ...),
command-line flags.

Examples:
  # Start with defaults
  flowmock serve

  # Seeded instance for a test suite
  flowmock serve --instance-id suite-a --port 9090 --seed`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	serveCmd.Flags().StringVar(&flagInstanceID, "instance-id", "", "instance id to serve (default \"default\")")
	serveCmd.Flags().StringVar(&flagHost, "host", "", "listen host (default \"localhost\")")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (default 8080)")
	serveCmd.Flags().BoolVar(&flagSeed, "seed", false, "populate the instance with sample data on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info("starting flowmock",
		zap.String("version", version),
		zap.String("instance_id", cfg.Instance.ID),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))

	registry := store.NewRegistry()
	st := registry.Instance(cfg.Instance.ID)

	if cfg.Instance.Seed {
		seed.NewGenerator(rand.NewSource(time.Now().UnixNano())).Populate(st)
		logger.Info("seeded instance with sample data",
			zap.String("instance_id", cfg.Instance.ID))
	}

	srv, err := api.NewServer(registry, cfg.Instance.ID, logger, &api.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server shutdown complete")
	return nil
}

// applyFlags overrides loaded config with any flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("instance-id") {
		cfg.Instance.ID = flagInstanceID
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = flagPort
	}
	if cmd.Flags().Changed("seed") {
		cfg.Instance.Seed = flagSeed
	}
}
