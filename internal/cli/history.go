package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

func historyCmd(g *globalFlags) *cobra.Command {
	var limit int
	var output string

	c := &cobra.Command{
		Use:   "history",
		Short: "List recent exports, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			if app.history == nil {
				return errors.New("history is disabled (history.enabled: false)")
			}

			entries, err := app.history.List(limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), entries, output)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")
	c.Flags().StringVar(&output, "output", "pretty", "Output format: pretty|json")
	return c
}

func printHistory(w io.Writer, entries []domain.HistoryEntry, output string) error {
	switch output {
	case "json":
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "pretty", "":
		printPrettyHistory(w, entries)
		return nil
	default:
		return fmt.Errorf("unsupported output %q (expected pretty|json)", output)
	}
}

func printPrettyHistory(w io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No exports yet.")
		return
	}

	for _, e := range entries {
		status := "OK"
		if e.Status != domain.HistoryOK {
			status = "FAIL"
		}

		fmt.Fprintf(w, "- [%s] %s %s %s\n", status, e.At.Local().Format(time.DateTime), e.Format, e.Payload)
		if e.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", e.Error)
		} else {
			fmt.Fprintf(w, "  saved: %s (%d bytes, %dms)\n", e.Location, e.Bytes, e.DurationMS)
		}
		if e.HTTPCode != 0 {
			fmt.Fprintf(w, "  status: %d\n", e.HTTPCode)
		}
	}
}
