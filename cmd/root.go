package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tito2912/prosperfactory.com/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logDir  string

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deploytools",
	Short: "post-deploy utilities for the prosperfactory.com static site",
	Long: `post-deploy utilities for the prosperfactory.com static site:
notify IndexNow of published pages and smoke-test rendered pages in a headless browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), logging.Options{
			Verbose: verbose,
			LogDir:  logDir,
		})
		if err != nil {
			return err
		}
		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRun is skipped when RunE fails
	_ = logger.Sync()

	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "[optional] enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "logDir", "", "[optional] logDir: additionally write JSON logs to a rotated file in this directory")
}
