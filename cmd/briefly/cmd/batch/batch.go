package batch

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
	runner "briefly/internal/app/batch"
)

var (
	dir          string
	limit        int
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory holding the audio files and documents to distill")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "process at most n files, oldest first (0 for all)")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "show the progress bar even when stderr is not a terminal")

	_ = Cmd.MarkFlagRequired("dir")
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Distill every accepted file in a directory",
	Long: `Distill every accepted file in a directory

- Audio files are transcribed and summarized, documents are summarized
- Files are processed one at a time, oldest first
- A failing file is reported and the batch continues
- Every result is added to the local history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := runner.CollectFiles(dir, limit)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no accepted files in %s\n", dir)
			return nil
		}

		return shared.WithApplication(func(ctx context.Context, application *app.Application) error {
			progress := runner.NewProgress(cmd.ErrOrStderr(), runner.ShouldShowProgress(showProgress))
			r := runner.NewRunner(application.Distiller, application.History, progress,
				application.Config.Server.MaxUploadBytes, application.Logger)

			report := r.Run(ctx, files)

			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				if result.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", result.File.Name, result.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %s\n", result.File.Name, result.Result.Summary)
			}
			fmt.Fprintf(out, "%d succeeded, %d failed\n", report.Succeeded, report.Failed)

			if err := ctx.Err(); err != nil {
				return err
			}
			if report.Succeeded == 0 && report.Failed > 0 {
				return fmt.Errorf("all %d files failed", report.Failed)
			}
			return nil
		})
	},
}
