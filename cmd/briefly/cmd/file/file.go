package file

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

// Cmd represents the file command
var Cmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Summarize a document",
	Long: fmt.Sprintf(`Extract the text of a document and summarize it in one line.

Accepted types: %s`, strings.Join(docparse.DocumentExtensions(), " ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !docparse.IsAllowedDocument(path) {
			return apperrors.Wrapf(apperrors.ErrUnsupportedDocument, "%s", filepath.Base(path))
		}

		return shared.WithApplication(func(ctx context.Context, application *app.Application) error {
			data, err := shared.ReadLimited(path, application.Config.Server.MaxUploadBytes)
			if err != nil {
				return err
			}

			text, err := docparse.ExtractText(path, data)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return apperrors.Wrapf(apperrors.ErrNoTextExtracted, "%s", filepath.Base(path))
			}

			return shared.Distill(ctx, application, cmd.OutOrStdout(), func(ctx context.Context) (*model.DistillationResult, error) {
				return application.Distiller.ProcessFile(ctx, text, filepath.Base(path))
			})
		})
	},
}
