package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

const msgNoHistoryRecorded = "No history recorded yet."

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past chain runs",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
	)
	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent chain runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.HistoryStore.List(limit)
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var (
		query string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search chain runs for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			records, err := container.HistoryStore.Search(query, limit)
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistorySearchLimit, "Max results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded chain runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func renderRecords(w io.Writer, records []domain.ChainRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, msgNoHistoryRecorded)
		return
	}
	for _, r := range records {
		status := "ok"
		if !r.OverallSuccess {
			status = "failed"
		}
		if r.HaltedEarly {
			status += " (halted)"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", humanize.Time(r.Timestamp), status, r.Commands)
		fmt.Fprintf(w, "    run %s, %d attempted, %s\n",
			r.RunID, r.Attempted, (time.Duration(r.DurationMS) * time.Millisecond).String())
	}
}
