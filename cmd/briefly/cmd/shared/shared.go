// Package shared holds the persistent flags and the bootstrapping used by
// every briefly subcommand.
package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"briefly/internal/app"
	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/logging"
	"briefly/internal/app/model"
	"briefly/internal/config"
)

// Persistent flags, bound by the root command
var (
	Verbose       bool
	ProvidersPath string
	HistoryPath   string
	JSONOutput    bool
)

// LoadConfig builds the configuration from flags and the environment
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(ProvidersPath, nil)
	if err != nil {
		return nil, err
	}
	if HistoryPath != "" {
		cfg.HistoryPath = HistoryPath
	}
	return cfg, nil
}

// NewLogger returns the CLI logger; --verbose forces debug level
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if Verbose {
		level = "debug"
	}
	return logging.NewLogger(cfg.Development(), level)
}

// WithApplication builds the stack, runs fn under a context cancelled by
// SIGINT or SIGTERM, and releases everything afterwards
func WithApplication(fn func(ctx context.Context, application *app.Application) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	application, cleanup, err := app.InitializeApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, application)
}

// Distill runs one request under the configured request timeout, records a
// successful result in history and prints it
func Distill(ctx context.Context, application *app.Application, out io.Writer,
	run func(ctx context.Context) (*model.DistillationResult, error)) error {
	if timeout := application.Config.Providers.Orchestrator.RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := run(ctx)
	if err != nil {
		return err
	}

	if _, err := application.History.Append(ctx, *result); err != nil {
		application.Logger.Warn("history append failed", zap.Error(err))
	}

	return PrintResult(out, result, JSONOutput)
}

// PrintResult writes the summary, or the whole result as indented JSON
func PrintResult(out io.Writer, result *model.DistillationResult, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	_, err := fmt.Fprintln(out, result.Summary)
	return err
}

// ReadText returns args joined by spaces, or all of in when the only arg is "-"
func ReadText(args []string, in io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// ReadLimited reads path, refusing files larger than limit bytes
func ReadLimited(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit > 0 && info.Size() > limit {
		return nil, apperrors.Wrapf(apperrors.ErrPayloadTooLarge, "%s is %d bytes, limit is %d", path, info.Size(), limit)
	}
	return os.ReadFile(path)
}
