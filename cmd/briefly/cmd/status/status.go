package status

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
)

// Cmd represents the status command
var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Print which providers are configured and the resulting service status",
	Long: `Print the health report as JSON.

The report is derived from configuration alone; no provider is contacted.
  operational  a diarizing transcriber and a summarizer are configured
  degraded     transcription works but without speaker separation
  restricted   transcription or summarization has no configured provider`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shared.WithApplication(func(ctx context.Context, application *app.Application) error {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(application.Distiller.Health())
		})
	},
}
