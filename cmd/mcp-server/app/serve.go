package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VanshTheJudged/mcp-server/internal/api"
	"github.com/VanshTheJudged/mcp-server/internal/config"
	"github.com/VanshTheJudged/mcp-server/internal/mcp"
	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service"
	"github.com/VanshTheJudged/mcp-server/internal/store"
	"github.com/VanshTheJudged/mcp-server/internal/telemetry"
	"github.com/VanshTheJudged/mcp-server/internal/versions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the company API server",
	Long: `Start the HTTP server that serves the company dataset.

The server requires a configuration file (--config) that specifies:
- The dataset file path, delimiter, and name field
- Query defaults (page size limits, missing-value sentinel)
- Whether to expose Prometheus metrics

The dataset is loaded once at startup; a load failure is fatal.
See the examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", ":8080", "Address to listen on")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		slog.Error("Failed to bind address flag", "error", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		slog.Error("Failed to bind config flag", "error", err)
		os.Exit(1)
	}

	// Mark config as required
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

// buildService loads configuration and constructs the company service with
// its dataset provider and query pipeline. The dataset is loaded eagerly;
// any failure is returned to the caller and is fatal.
func buildService(ctx context.Context, configPath string) (*config.Config, service.CompanyService, error) {
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.InfoContext(ctx, "Loaded configuration",
		"path", configPath,
		"dataset", cfg.Dataset.File.Path,
		"name_field", cfg.GetNameField(),
	)

	provider := store.NewFileDatasetProvider(cfg.Dataset.File.Path, cfg.GetDelimiter(), cfg.GetNameField())
	pipeline := query.NewPipeline(cfg.GetDefaultLimit(), cfg.GetMaxLimit(), cfg.GetMissingValue())

	svc, err := service.New(ctx, provider, pipeline)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create company service: %w", err)
	}

	return cfg, svc, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	address := viper.GetString("address")

	slog.InfoContext(ctx, "Starting company API server", "address", address)

	cfg, svc, err := buildService(ctx, viper.GetString("config"))
	if err != nil {
		return err
	}

	// Set up metrics (no-op when disabled)
	meterProvider, metricsHandler, err := telemetry.NewMeterProvider(ctx,
		telemetry.WithMetricsEnabled(cfg.MetricsEnabled()),
		telemetry.WithMeterServiceVersion(versions.GetVersionInfo().Version),
	)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}

	metricsMiddleware, err := telemetry.MetricsMiddleware(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create metrics middleware: %w", err)
	}

	// Record dataset size once; the dataset is immutable for the process lifetime
	if datasetMetrics, err := telemetry.NewDatasetMetrics(meterProvider); err == nil {
		if info, infoErr := svc.DatasetInfo(ctx); infoErr == nil {
			datasetMetrics.RecordDataset(ctx, info.Source, int64(info.TotalCompanies), int64(info.FieldCount))
		}
	}

	// The MCP surface shares the service with the REST API
	mcpServer := mcp.New(svc, slog.Default())

	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			metricsMiddleware,
			api.LoggingMiddleware,
		),
		api.WithMCPHandler(mcpServer.StreamableHandler()),
		api.WithMetricsHandler(metricsHandler),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		slog.InfoContext(ctx, "Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}

	if sd, ok := meterProvider.(interface{ Shutdown(context.Context) error }); ok {
		if err := sd.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down meter provider", "error", err)
		}
	}

	slog.Info("Server shutdown complete")
	return nil
}
