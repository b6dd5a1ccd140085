package cmd

import (
	"fmt"

	"github.com/kerbaras/ucfprep/pkg/app/styles"
	"github.com/kerbaras/ucfprep/pkg/config"
	"github.com/kerbaras/ucfprep/pkg/sources"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Move the extracted videos into train/ and test/ for one fold",
	Long: `Move every video of UCF-101/ into train/ or test/ under --root, following
the fold's lists in ucfTrainTestlist/, then remove the directories left
empty. Videos are moved, not copied, so a split can only be run once per
extraction.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := stringFlag(cmd, "root", cfg.Root)
		fold, err := sources.ParseFold(intFlag(cmd, "fold", cfg.Fold))
		if err != nil {
			return err
		}

		printer := newEventPrinter(cmd.OutOrStdout())
		controller := newController(printer)

		fmt.Fprintf(cmd.OutOrStdout(), "✂️  Splitting %s by fold %d\n", root, fold)
		report, err := controller.Splitter().Split(cmd.Context(), root, fold)
		if err != nil {
			return err
		}

		if !report.SourceRemoved {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %s not empty or could not be removed\n", sources.DatasetDir)
		}
		if report.Problems != nil {
			fmt.Fprintln(cmd.OutOrStdout(), styles.StatusWarning.Render(report.Problems.Error()))
		}
		printer.Summary(fmt.Sprintf("Moved %d train files and %d test files for fold %d.", report.Train, report.Test, fold))
		printer.RunID(report.RunID)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringP("root", "r", config.DefaultRoot, "Directory holding UCF-101/ and ucfTrainTestlist/")
	splitCmd.Flags().IntP("fold", "f", config.DefaultFold, "Official split to use (1, 2 or 3)")
}
