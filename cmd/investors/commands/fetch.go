package commands

import (
	"log/slog"
	"time"

	"investorparser/internal/fetch"
	"investorparser/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var (
	fetchUrls *string
	fetchDir  *string
)

func init() {
	fetchUrls = fetchCmd.Flags().String("urls", "", "A file listing one profile url per line.")
	fetchDir = fetchCmd.Flags().String("dir", "", "The directory to save pages to (defaults to pages_dir).")
	fetchCmd.MarkFlagRequired("urls")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch --urls <urls.txt> [--dir <pages>]",
	Short: "Downloads the profile pages that are not saved yet.",
	Run: func(cmd *cobra.Command, args []string) {
		urls, err := fetch.ReadUrls(*fetchUrls)
		if err != nil {
			serviceutil.Fatal("failed to read url list", err)
		}

		fetcher := fetch.NewFetcher(fetch.Options{
			Dir:               orDefault(*fetchDir, config.PagesDir),
			RequestsPerSecond: config.Fetch.RequestsPerSecond,
			Timeout:           time.Duration(config.Fetch.TimeoutSeconds) * time.Second,
			UserAgent:         config.Fetch.UserAgent,
		}, tel)

		result, err := fetcher.FetchAll(cmd.Context(), urls)
		if err != nil {
			slog.Warn("some pages could not be fetched", "err", err)
		}
		slog.Info(
			"fetch done",
			"urls", len(urls),
			"saved", len(result.Saved),
			"skipped", len(result.Skipped),
		)
	},
}
