package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kerbaras/ucfprep/pkg/config"
	"github.com/spf13/cobra"
)

var subsetCmd = &cobra.Command{
	Use:   "subset",
	Short: "Copy the videos named in a list into a new tree",
	Long: `Copy every file named in --file-list (one relative path per line) from
--source-dir to the same relative path under --target-dir, keeping
modification times. Listed files that do not exist are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceDir := stringFlag(cmd, "source-dir", cfg.SourceDir)
		fileList := stringFlag(cmd, "file-list", cfg.FileList)
		targetDir := stringFlag(cmd, "target-dir", cfg.TargetDir)

		printer := newEventPrinter(cmd.OutOrStdout())
		controller := newController(printer)

		fmt.Fprintf(cmd.OutOrStdout(), "📋 Copying files listed in %s\n", fileList)
		report, err := controller.Copier().Copy(cmd.Context(), sourceDir, fileList, targetDir)
		if err != nil {
			return err
		}

		printer.Summary(fmt.Sprintf("Copied %d files (%s) to '%s', %d missing.",
			len(report.Copied), humanize.Bytes(uint64(report.Bytes)), targetDir, len(report.Missing)))
		printer.RunID(report.RunID)
		return nil
	},
}

func init() {
	subsetCmd.Flags().String("source-dir", config.DefaultSourceDir, "Tree the listed paths are relative to")
	subsetCmd.Flags().String("file-list", config.DefaultFileList, "List of relative paths to copy")
	subsetCmd.Flags().String("target-dir", config.DefaultTargetDir, "Tree to copy into")
}
