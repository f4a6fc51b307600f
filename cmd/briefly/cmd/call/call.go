package call

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
	"briefly/internal/app/docparse"
	apperrors "briefly/internal/app/errors"
	"briefly/internal/app/model"
)

// Cmd represents the call command
var Cmd = &cobra.Command{
	Use:   "call <path>",
	Short: "Transcribe a call recording and summarize it",
	Long: fmt.Sprintf(`Transcribe a call recording, speaker-separated when the provider supports it,
then summarize the transcript in one line.

Accepted types: %s`, strings.Join(docparse.AudioExtensions(), " ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		name := filepath.Base(path)
		if !docparse.IsAllowedAudio(name) {
			return apperrors.Wrapf(apperrors.ErrUnsupportedAudio, "%s", name)
		}

		return shared.WithApplication(func(ctx context.Context, application *app.Application) error {
			audio, err := shared.ReadLimited(path, application.Config.Server.MaxUploadBytes)
			if err != nil {
				return err
			}

			return shared.Distill(ctx, application, cmd.OutOrStdout(), func(ctx context.Context) (*model.DistillationResult, error) {
				return application.Distiller.ProcessCall(ctx, audio, docparse.MimeForAudio(name), name)
			})
		})
	},
}
