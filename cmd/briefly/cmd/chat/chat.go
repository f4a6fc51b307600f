package chat

import (
	"context"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
	"briefly/internal/app/model"
)

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat [text | -]",
	Short: "Summarize a pasted conversation",
	Long: `Summarize a pasted conversation in one line.

Pass the conversation as arguments, or "-" to read it from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := shared.ReadText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		return shared.WithApplication(func(ctx context.Context, application *app.Application) error {
			return shared.Distill(ctx, application, cmd.OutOrStdout(), func(ctx context.Context) (*model.DistillationResult, error) {
				return application.Distiller.ProcessChat(ctx, text)
			})
		})
	},
}
