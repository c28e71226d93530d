package commands

import (
	"context"
	"fmt"
	"log/slog"

	"investorparser/internal/batch"
	"investorparser/internal/profile"
	"investorparser/internal/recordstore"
	"investorparser/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var (
	batchDir     *string
	batchOut     *string
	batchDb      *string
	batchWorkers *int
)

func init() {
	batchDir = batchCmd.Flags().String("dir", "", "The directory of saved profile pages (defaults to pages_dir).")
	batchOut = batchCmd.Flags().String("out", "", "The JSON file to write the records to (defaults to output).")
	batchDb = batchCmd.Flags().String("db", "", "A sqlite file to also push the records into.")
	batchWorkers = batchCmd.Flags().Int("workers", 0, "How many pages to parse at once (defaults to workers).")
	rootCmd.AddCommand(batchCmd)
}

func orDefault[T comparable](flag, fallback T) T {
	var zero T
	if flag == zero {
		return fallback
	}
	return flag
}

var batchCmd = &cobra.Command{
	Use:   "batch [--dir <pages>] [--out <records.json>] [--db <records.db>] [--workers <n>]",
	Short: "Parses every saved profile page of a directory.",
	Run: func(cmd *cobra.Command, args []string) {
		dir := orDefault(*batchDir, config.PagesDir)
		out := orDefault(*batchOut, config.Output)
		workers := orDefault(*batchWorkers, config.Workers)
		storeConfig := config.Store
		if *batchDb != "" {
			storeConfig = recordstore.Config{File: *batchDb}
		}

		runner := batch.NewRunner(profile.NewParser(tel), workers, tel)
		result, err := runner.RunDir(cmd.Context(), dir)
		if err != nil {
			serviceutil.Fatal("batch failed", err, "dir", dir)
		}
		for _, failure := range result.Failures {
			slog.Warn("skipped page", "file", failure.File, "err", failure.Err)
		}

		err = batch.WriteRecords(out, result.Records)
		if err != nil {
			serviceutil.Fatal("failed to write records", err, "out", out)
		}

		if storeConfig.Enabled() {
			err = pushRecords(cmd.Context(), storeConfig, result.Records)
			if err != nil {
				serviceutil.Fatal("failed to push records", err)
			}
		}

		stats := batch.Summarize(result.Records)
		stats.Report(tel)
		slog.Info(
			"batch done",
			"records", stats.Total,
			"failures", len(result.Failures),
			"with_investments", stats.WithInvestments,
			"with_areas", stats.WithAreas,
			"with_co_investors", stats.WithCoInvestors,
			"with_scouts", stats.WithScouts,
			"with_fund_size", stats.WithFundSize,
			"with_roles", stats.WithRoles,
			"out", out,
		)
	},
}

// pushRecords upserts the records into the configured store, the database is
// closed before returning.
func pushRecords(ctx context.Context, storeConfig recordstore.Config, records []profile.Record) error {
	database, err := storeConfig.OpenDB()
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer database.Close()

	store := recordstore.NewStore(database)
	err = store.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate record store: %w", err)
	}
	return store.Put(ctx, records...)
}
