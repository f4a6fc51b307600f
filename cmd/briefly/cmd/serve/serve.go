package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
	"briefly/internal/app/api/provider"
	"briefly/internal/config"
)

const shutdownTimeout = 10 * time.Second

var (
	host string
	port int
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen address (default $HOST or 0.0.0.0)")
	Cmd.Flags().IntVar(&port, "port", 0, "listen port (default $PORT or 8080)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API

- POST /api/process-chat, /api/process-file and /api/process-call
- GET /api/health reports configured providers without calling them
- GET /api/v1/providers and /api/v1/stats expose chain order and attempt statistics
- GET /metrics serves Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig()
		if err != nil {
			return err
		}
		if host != "" {
			cfg.Server.Host = host
		}
		if port != 0 {
			cfg.Server.Port = port
		}

		logger, err := shared.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			return err
		}

		printBanner(cmd, cfg)

		if err := srv.Start(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		logger.Info("shutdown signal received", zap.String("signal", "interrupt"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func printBanner(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Briefly Signal Hub listening on http://%s\n", cfg.Server.Addr())

	registry, err := app.NewProviderFactory().BuildRegistry(&cfg.Providers)
	if err != nil {
		return
	}

	transcription := provider.ChainNames(registry, provider.OperationTranscribe)
	if len(transcription) == 0 {
		fmt.Fprintln(out, "Transcription chain: none configured")
	} else {
		fmt.Fprintf(out, "Transcription chain: %s\n", strings.Join(transcription, " -> "))
	}

	summarization := provider.ChainNames(registry, provider.OperationSummarize)
	if len(summarization) == 0 {
		fmt.Fprintln(out, "Summarization chain: none configured")
	} else {
		fmt.Fprintf(out, "Summarization chain: %s\n", strings.Join(summarization, " -> "))
	}

	fmt.Fprintf(out, "Status: %s\n", provider.CurrentStatus(registry))
	if keys := cfg.Keys.Available(); len(keys) > 0 {
		fmt.Fprintf(out, "Keys found: %s\n", strings.Join(keys, ", "))
	}
}
