package cmd

import (
	"errors"
	"fmt"

	"github.com/kerbaras/ucfprep/pkg/app"
	"github.com/kerbaras/ucfprep/pkg/app/components"
	"github.com/spf13/cobra"
)

var errNoLedger = errors.New("history: the ledger is disabled (--ledger is empty)")

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Browse recorded runs",
	Long: `Browse the runs recorded in the ledger. Without --plain an interactive
browser opens; with --plain the runs, or the operations of the given run,
are printed as a table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ledger == nil {
			return errNoLedger
		}
		plain, _ := cmd.Flags().GetBool("plain")
		limit, _ := cmd.Flags().GetInt("limit")

		if !plain {
			return app.NewApp(ledger, limit).Run()
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := ledger.GetRun(args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("history: run %s not found", args[0])
			}
			ops, err := ledger.GetOperations(run.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n🧾 %s run %s: %s (%s)\n\n", run.Tool, run.ID, run.Status, components.RunSummary(run))
			if len(ops) == 0 {
				fmt.Fprintln(out, "No operations recorded.")
				return nil
			}
			fmt.Fprintln(out, components.OperationsTable(ops))
			return nil
		}

		runs, err := ledger.ListRuns(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(out, "🗂  No runs recorded yet. Run 'ucfprep fetch' to get started.")
			return nil
		}

		fmt.Fprintf(out, "\n🗂  Runs (%d)\n\n", len(runs))
		fmt.Fprintln(out, components.RunsTable(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("plain", false, "Print a table instead of opening the browser")
	historyCmd.Flags().Int("limit", 50, "Show at most this many runs (0 for all)")
}
