package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/fieldstone-labs/trace-exporter/pkg/api"
	"github.com/fieldstone-labs/trace-exporter/pkg/gaugeconfig"
	"github.com/fieldstone-labs/trace-exporter/pkg/log"
	"github.com/fieldstone-labs/trace-exporter/pkg/registry"
	"github.com/fieldstone-labs/trace-exporter/pkg/synthetic"
	"github.com/fieldstone-labs/trace-exporter/pkg/watcher"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trace-exporter",
	Short: "Tails database trace logs and exposes a Prometheus scrape endpoint",
	Long: `trace-exporter is a sidecar that tails a database's rotated
trace.*.json log files, extracts domain-specific fields into named gauges
and counters described by a declarative config file, and serves the
current values on a Prometheus-compatible scrape endpoint.`,
	Version: Version,
	RunE:    run,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"trace-exporter version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", true, "Output logs in JSON format")
	rootCmd.Flags().String("config", "config.toml", "Path to the gauge binding config file")
	rootCmd.Flags().Bool("synthetic", false, "Write synthetic trace events into LOG_DIR for local smoke testing")

	cobra.OnInitialize(initLogging)
}

var traceLogFile io.Closer

// initLogging wires the exporter's own rolling log (TRACE_LOG_FILE). The
// path comes from the environment rather than any flag, like the rest of
// the runtime config.
func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	closer, err := log.Init(log.Config{
		Level:    logLevel,
		Console:  !logJSON,
		FilePath: getEnvDefault("TRACE_LOG_FILE", "logs/tracing.log"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	traceLogFile = closer
}

// exporterConfig holds the environment-driven runtime configuration. Each
// variable must parse into its expected type or the process exits naming
// the offending variable.
type exporterConfig struct {
	ListenAddr      string
	LogDir          string
	LogPollInterval time.Duration
}

func loadExporterConfig() (exporterConfig, error) {
	cfg := exporterConfig{
		ListenAddr: getEnvDefault("LISTEN_ADDR", "0.0.0.0:9200"),
		LogDir:     getEnvDefault("LOG_DIR", "logs"),
	}

	pollRaw := getEnvDefault("LOG_POLL_INTERVAL_SECS", "2.0")
	pollSecs, err := strconv.ParseFloat(pollRaw, 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid LOG_POLL_INTERVAL_SECS %q: %w", pollRaw, err)
	}
	if pollSecs <= 0 {
		return cfg, fmt.Errorf("invalid LOG_POLL_INTERVAL_SECS %q: must be positive", pollRaw)
	}
	cfg.LogPollInterval = time.Duration(pollSecs * float64(time.Second))

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func run(cmd *cobra.Command, _ []string) error {
	if traceLogFile != nil {
		defer traceLogFile.Close()
	}
	logger := log.WithComponent("main")

	cfg, err := loadExporterConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	defs, err := gaugeconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("gauge config error: %w", err)
	}

	reg, err := registry.New(defs)
	if err != nil {
		return fmt.Errorf("failed to build metric registry: %w", err)
	}
	logger.Info().Int("recorder_count", reg.Len()).Msg("gauge config loaded")

	for _, collector := range reg.Collectors() {
		if err := prometheus.Register(collector); err != nil {
			return fmt.Errorf("failed to register metric collector: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", cfg.LogDir, err)
	}

	server := api.NewServer()
	httpServer, errCh := server.ListenAndServe(cfg.ListenAddr)
	logger.Info().Str("addr", cfg.ListenAddr).Msg("exposition server listening")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := watcher.New(cfg.LogDir, cfg.LogPollInterval, reg)
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("log directory watcher stopped")
		}
	}()

	synth, _ := cmd.Flags().GetBool("synthetic")
	if synth {
		logger.Warn().Msg("synthetic event generation enabled, writing fake trace lines into LOG_DIR")
		go synthetic.Run(ctx, cfg.LogDir)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received, draining")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("exposition server failed")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to drain exposition server: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
