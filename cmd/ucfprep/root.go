package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kballard/go-shellquote"
	"github.com/kerbaras/ucfprep/pkg/config"
	"github.com/kerbaras/ucfprep/pkg/data"
	"github.com/kerbaras/ucfprep/pkg/integrations"
	"github.com/kerbaras/ucfprep/pkg/services"
	"github.com/kerbaras/ucfprep/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
	ledger *data.Repository
)

var rootCmd = &cobra.Command{
	Use:   "ucfprep",
	Short: "Prepare the UCF101 action recognition dataset",
	Long: `Download and extract UCF101, sample a subset of its videos, and split
the extracted dataset into train/ and test/ by one of the official folds.
Every run is recorded in a local ledger that 'ucfprep history' can browse.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(".env")
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err = utils.NewLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		path := stringFlag(cmd, "ledger", cfg.Ledger)
		if path == "" {
			logger.Debug("ledger disabled")
			return nil
		}
		ledger, err = data.NewDuckDBRepository(path)
		if err != nil {
			// the tools work without a ledger; history does not
			if cmd.Name() == "history" {
				return err
			}
			logger.Warn("ledger unavailable, runs will not be recorded", zap.String("path", path), zap.Error(err))
			ledger = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("ledger", config.DefaultLedger, "Run ledger database (empty disables recording)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(subsetCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(historyCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeLedger()
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func closeLedger() {
	if ledger != nil {
		if err := ledger.Close(); err != nil {
			logger.Warn("failed to close ledger", zap.Error(err))
		}
		ledger = nil
	}
	_ = logger.Sync()
}

// stringFlag returns the flag's value when it was given on the command line
// and fallback otherwise, so environment settings sit between the two.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// toolOptions wires the shared logger and ledger and prints every event.
func toolOptions(onEvent func(services.Event)) services.Options {
	opts := services.Options{
		Logger:  logger,
		OnEvent: onEvent,
		Args:    shellquote.Join(os.Args[1:]...),
	}
	// a nil *data.Repository must not become a non-nil interface
	if ledger != nil {
		opts.Ledger = ledger
	}
	return opts
}

func newController(printer *eventPrinter) *services.Controller {
	runner := integrations.NewExecRunner()
	runner.Logger = logger
	return services.NewController(cfg, runner, toolOptions(printer.OnEvent))
}
