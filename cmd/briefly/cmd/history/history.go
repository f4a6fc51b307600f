package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	store "briefly/internal/app/history"
)

var clearAll bool

func init() {
	Cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every history entry")
	Cmd.AddCommand(exportCmd)
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent distillations",
	Long: fmt.Sprintf(`List the most recent distillations, newest first.

History stays on this machine and keeps the %d most recent entries.
A path ending in .db selects the SQLite store, anything else a JSON file.`, store.MaxEntries),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSink(func(ctx context.Context, sink store.Sink) error {
			if clearAll {
				if err := sink.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			}

			entries, err := sink.List(ctx)
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries, shared.JSONOutput)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the history to an Excel file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSink(func(ctx context.Context, sink store.Sink) error {
			entries, err := sink.List(ctx)
			if err != nil {
				return err
			}
			if err := store.ExportXLSX(entries, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(entries), args[0])
			return nil
		})
	},
}

func withSink(fn func(ctx context.Context, sink store.Sink) error) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}

	sink, err := store.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	return fn(context.Background(), sink)
}

func printEntries(out io.Writer, entries []store.Entry, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no history yet")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tSOURCE\tSUMMARY")
	for _, entry := range entries {
		source := entry.SourceName
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04"), entry.Type, source, entry.Summary)
	}
	return w.Flush()
}
