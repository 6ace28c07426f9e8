// Package cmd holds the feeportal command-line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/feeportal/internal/app"
	"github.com/zjrosen/feeportal/internal/config"
	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/telemetry"
)

var (
	flagDebug  bool
	flagConfig string
	flagData   string
)

var rootCmd = &cobra.Command{
	Use:   "feeportal",
	Short: "Institute payment portal in the terminal",
	Long: `feeportal is a terminal portal for students: register, sign in,
choose a payment method and review payment history.

Configuration is read from .feeportal.yaml in the current directory or
from the user config directory, then FEEPORTAL_* environment variables
and a .env file.`,
	SilenceUsage: true,
	RunE:         runPortal,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default: .feeportal.yaml or user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "payment history fixture (YAML)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration, letting explicitly set flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := map[string]any{}
	if cmd.Flags().Changed("debug") {
		overrides["debug"] = flagDebug
	}
	if cmd.Flags().Changed("data") {
		overrides["data.fixture"] = flagData
	}
	return config.Load(config.Options{
		Path:      flagConfig,
		WorkDir:   ".",
		Overrides: overrides,
	})
}

// initLogging starts the debug log when requested. The returned cleanup is
// never nil.
func initLogging(cfg config.Config) (func(), error) {
	if !log.EnabledFromEnv(cfg.Debug) {
		return func() {}, nil
	}
	cleanup, err := log.InitWithTeaLog(cfg.LogPath(), "feeportal", cfg.Log.BufferSize)
	if err != nil {
		return nil, err
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "Debug logging enabled", "path", cfg.LogPath(), "config", cfg.File)
	return cleanup, nil
}

// tracePath is where the stdout exporter writes while the TUI owns the terminal.
func tracePath(cfg config.Config) string {
	return strings.TrimSuffix(cfg.LogPath(), ".log") + "-traces.json"
}

// initTelemetry installs the tracer provider. Interactive runs send stdout
// traces to a file next to the debug log.
func initTelemetry(ctx context.Context, cfg config.Config, interactive bool, stdout io.Writer) (func(), error) {
	w := stdout
	var file *os.File
	if interactive && cfg.Telemetry.Exporter == config.ExporterStdout {
		f, err := os.OpenFile(tracePath(cfg), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path derived from config
		if err != nil {
			return nil, fmt.Errorf("opening trace file: %w", err)
		}
		file = f
		w = f
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, w)
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTelemetry, "Tracer shutdown failed", err)
		}
		if file != nil {
			_ = file.Close()
		}
	}, nil
}

func runPortal(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cleanupLog, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanupLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stopTracing, err := initTelemetry(ctx, cfg, true, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer stopTracing()

	backend, err := app.NewBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.ErrorErr(log.CatPayments, "Closing backend failed", err)
		}
	}()

	zone.NewGlobal()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(app.New(backend.Services, backend.Options()...), opts...).Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("running portal: %w", err)
	}
	return nil
}
