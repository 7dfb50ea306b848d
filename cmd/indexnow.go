package cmd

import (
	"os"
	"time"

	"github.com/Tito2912/prosperfactory.com/indexnow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	keyFile   string
	pagesFile string
	siteURL   string
	endpoint  string
	timeout   time.Duration
	rateLimit float64
)

var indexnowCmd = &cobra.Command{
	Use:   "indexnow",
	Short: "notify IndexNow of the site's pages after a production deploy",
	Long: `notify IndexNow of the site's pages after a production deploy.

Runs only when CONTEXT is "production". The key is read from INDEXNOW_KEY,
falling back to the key-verification file. INDEXNOW_KEY_LOCATION overrides
the URL the key file is served from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Named("indexnow")

		cfg := indexnow.ConfigFromEnv(os.Getenv)
		cfg.KeyFile = keyFile
		cfg.SiteURL = siteURL
		cfg.Endpoint = endpoint
		cfg.Timeout = timeout
		cfg.RateLimit = rateLimit
		cfg.Pages = indexnow.DefaultPages(siteURL)

		if pagesFile != "" {
			pages, err := indexnow.LoadPagesFromFile(pagesFile)
			if err != nil {
				return err
			}
			cfg.Pages = pages
		}

		if err := indexnow.NewApp(cfg, log).Run(cmd.Context()); err != nil {
			log.Error("notification aborted", zap.Error(err))

			return err
		}

		return nil
	},
}

func init() {
	indexnowCmd.Flags().StringVar(&keyFile, "keyFile", indexnow.DefaultKeyFile, "[optional] key-verification file read when INDEXNOW_KEY is unset")
	indexnowCmd.Flags().StringVar(&pagesFile, "pagesFile", "", "[optional] JSON file {\"pages\": [...]} replacing the built-in page list")
	indexnowCmd.Flags().StringVar(&siteURL, "siteURL", indexnow.DefaultSiteURL, "[optional] site the built-in pages and default key location belong to")
	indexnowCmd.Flags().StringVar(&endpoint, "endpoint", indexnow.DefaultEndpoint, "[optional] IndexNow endpoint")
	indexnowCmd.Flags().DurationVar(&timeout, "timeout", indexnow.DefaultTimeout, "[optional] timeout per request")
	indexnowCmd.Flags().Float64Var(&rateLimit, "rateLimit", indexnow.DefaultRateLimit, "[optional] rate limit of requests / second (0: unlimited)")

	rootCmd.AddCommand(indexnowCmd)
}
