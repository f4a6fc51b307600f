package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/batch"
	"briefly/cmd/briefly/cmd/call"
	"briefly/cmd/briefly/cmd/chat"
	"briefly/cmd/briefly/cmd/config"
	"briefly/cmd/briefly/cmd/file"
	"briefly/cmd/briefly/cmd/history"
	"briefly/cmd/briefly/cmd/serve"
	"briefly/cmd/briefly/cmd/shared"
	"briefly/cmd/briefly/cmd/status"
	"briefly/cmd/briefly/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "briefly",
	Short: "Distill chats, documents and calls into one-line summaries",
	Long: `Briefly turns customer conversations into one-line summaries.

- Calls are transcribed by the first configured speech-to-text provider that succeeds
- Text is summarized by the first configured summarization provider that succeeds
- Providers are tried in priority order; a failure falls through to the next one
- Results are kept in a local history of the 50 most recent entries`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(chat.Cmd)
	rootCmd.AddCommand(file.Cmd)
	rootCmd.AddCommand(call.Cmd)
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(status.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&shared.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&shared.ProvidersPath, "providers", "p", "",
		"provider configuration file (default $BRIEFLY_PROVIDERS or ./providers.yaml)")
	rootCmd.PersistentFlags().StringVar(&shared.HistoryPath, "history", "",
		"history file, *.json or *.db (default $BRIEFLY_HISTORY or ~/.briefly/history.json)")
	rootCmd.PersistentFlags().BoolVar(&shared.JSONOutput, "json", false, "print full results as JSON")
}
