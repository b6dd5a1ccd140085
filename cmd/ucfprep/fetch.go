package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kerbaras/ucfprep/pkg/config"
	"github.com/kerbaras/ucfprep/pkg/integrations"
	"github.com/kerbaras/ucfprep/pkg/services"
	"github.com/kerbaras/ucfprep/pkg/sources"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and extract the UCF101 archives",
	Long: `Download the UCF101 videos and the official train/test split lists with
wget, then unpack them with unrar and unzip next to the archives. Downloads
resume, so an interrupted fetch can simply be run again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := stringFlag(cmd, "download-dir", cfg.DownloadDir)
		detection, _ := cmd.Flags().GetBool("detection")
		strict, _ := cmd.Flags().GetBool("strict")
		retries, _ := cmd.Flags().GetInt("retries")

		printer := newEventPrinter(cmd.OutOrStdout())
		controller := newController(printer)

		if err := integrations.LookupTools(controller.Tools()...); err != nil {
			return fmt.Errorf("fetch: %w", err)
		}

		archives := sources.UCF101(detection)
		fmt.Fprintf(cmd.OutOrStdout(), "📥 Fetching %d archives into %s\n", len(archives), dir)

		report, err := controller.Fetcher(services.FetchOptions{
			Strict:  strict,
			Retries: retries,
		}).Fetch(cmd.Context(), dir, archives)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n📦 %d downloaded, %d extracted, %s on disk\n",
			len(report.Downloaded), len(report.Extracted), humanize.Bytes(uint64(report.Bytes)))
		printer.Summary(fmt.Sprintf("All available files downloaded and extracted to '%s'.", dir))
		printer.RunID(report.RunID)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("download-dir", config.DefaultDownloadDir, "Directory to download and extract into")
	fetchCmd.Flags().Bool("detection", false, "Also fetch the detection-task split lists")
	fetchCmd.Flags().Bool("strict", false, "Fail on the first non-zero exit of wget, unrar or unzip")
	fetchCmd.Flags().Int("retries", 0, "Retry a failed download this many times")
}
