package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tito2912/prosperfactory.com/pagecheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errPagesNotClean = errors.New("pages logged errors or differ from the state baseline")

type pageAnalyzer interface {
	Analyze(context.Context, string) (*pagecheck.Report, error)
}

var newPageAnalyzer = func(opts pagecheck.Options, log *zap.Logger) (pageAnalyzer, error) {
	return pagecheck.NewAnalyzer(opts, log)
}

var (
	root         string
	browserBin   string
	headless     bool
	noSandbox    bool
	settle       time.Duration
	stateGlobal  string
	baselineFile string
	strict       bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [page ...]",
	Short: "load pages in a headless browser and report console output and global state",
	Long: `load pages in a headless browser and report console output and global state.

Each page gets its own browser. Without arguments the localized home pages
(index.html, fr/index.html, es/index.html, de/index.html) are checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Named("verify")

		pages := args
		if len(pages) == 0 {
			pages = pagecheck.DefaultPages
		}

		var baseline pagecheck.Baseline
		if baselineFile != "" {
			b, err := pagecheck.LoadBaseline(baselineFile)
			if err != nil {
				return err
			}
			baseline = b
		}

		analyzer, err := newPageAnalyzer(pagecheck.Options{
			Root:        root,
			BrowserBin:  browserBin,
			Headless:    headless,
			NoSandbox:   noSandbox,
			Settle:      settle,
			StateGlobal: stateGlobal,
		}, log)
		if err != nil {
			return err
		}

		dirty := 0
		for _, page := range pages {
			log.Debug("checking page", zap.String("path", page))

			report, err := analyzer.Analyze(cmd.Context(), page)
			if err != nil {
				return err
			}

			if baseline != nil {
				report.BaselineDiff, err = baseline.Compare(report)
				if err != nil {
					return err
				}
			}

			if err := pagecheck.WriteReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if !report.Clean() {
				dirty++
			}
		}

		if strict && dirty > 0 {
			return fmt.Errorf("%d of %d %w", dirty, len(pages), errPagesNotClean)
		}

		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&root, "root", ".", "[optional] directory page paths are relative to")
	verifyCmd.Flags().StringVar(&browserBin, "browserBin", "", "[optional] Chromium binary (default: detected or downloaded)")
	verifyCmd.Flags().BoolVar(&headless, "headless", true, "[optional] run the browser headless")
	verifyCmd.Flags().BoolVar(&noSandbox, "noSandbox", false, "[optional] disable the Chromium sandbox (needed in some CI containers)")
	verifyCmd.Flags().DurationVar(&settle, "settle", pagecheck.DefaultSettle, "[optional] how long to collect console output after load")
	verifyCmd.Flags().StringVar(&stateGlobal, "stateGlobal", pagecheck.DefaultStateGlobal, "[optional] name of the global state object")
	verifyCmd.Flags().StringVar(&baselineFile, "baseline", "", "[optional] JSON file mapping page paths to expected state keys")
	verifyCmd.Flags().BoolVar(&strict, "strict", false, "[optional] exit non-zero when a page logs anything or differs from the baseline")

	rootCmd.AddCommand(verifyCmd)
}
