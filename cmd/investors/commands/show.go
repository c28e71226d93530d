package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"investorparser/internal/batch"
	"investorparser/internal/profile"
	"investorparser/internal/recordstore"
	"investorparser/pkg/serviceutil"
	"investorparser/pkg/textutil"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	showIn       *string
	showDb       *string
	showInvestor *string
	showLimit    *int
)

func init() {
	showIn = showCmd.Flags().String("in", "", "The records JSON file to read (defaults to output).")
	showDb = showCmd.Flags().String("db", "", "Read the records from this sqlite file instead.")
	showInvestor = showCmd.Flags().String("investor", "", "Show the details of the investor best matching this name.")
	showLimit = showCmd.Flags().Int("limit", 20, "How many investors to list.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--in <records.json>] [--db <records.db>] [--investor <name>]",
	Short: "Prints field statistics and investor tables of parsed records.",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := loadRecords(cmd)
		if err != nil {
			serviceutil.Fatal("failed to load records", err)
		}

		if *showInvestor != "" {
			rec, score, ok := findInvestor(records, *showInvestor)
			if !ok {
				fmt.Printf("no investor resembles %q\n", *showInvestor)
				os.Exit(1)
			}
			renderInvestor(rec, score)
			return
		}

		renderStats(batch.Summarize(records))
		renderInvestors(records, *showLimit)
	},
}

func loadRecords(cmd *cobra.Command) ([]profile.Record, error) {
	if *showDb == "" {
		return batch.ReadRecords(orDefault(*showIn, config.Output))
	}
	database, err := recordstore.Config{File: *showDb}.OpenDB()
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return recordstore.NewStore(database).All(cmd.Context())
}

const investorMatchThreshold = 0.8

// findInvestor returns the record whose name is most similar to the query.
func findInvestor(records []profile.Record, query string) (profile.Record, float64, bool) {
	query = textutil.NormalizeName(query)

	var best profile.Record
	bestScore := 0.0
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		score := matchr.JaroWinkler(textutil.NormalizeName(rec.Name), query, false)
		if score > bestScore {
			best = rec
			bestScore = score
		}
	}
	if bestScore < investorMatchThreshold {
		return profile.Record{}, bestScore, false
	}
	return best, bestScore, true
}

// sortByInvestments orders records by investment count, most first, ties by name.
func sortByInvestments(records []profile.Record) []profile.Record {
	sorted := make([]profile.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].InvestmentCount != sorted[j].InvestmentCount {
			return sorted[i].InvestmentCount > sorted[j].InvestmentCount
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

func renderStats(stats batch.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Field", "Records", "Share"})

	rows := []struct {
		field string
		n     int
	}{
		{"investments", stats.WithInvestments},
		{"areas_of_interest", stats.WithAreas},
		{"co_investors", stats.WithCoInvestors},
		{"scouts_angels", stats.WithScouts},
		{"current_fund_size", stats.WithFundSize},
		{"roles", stats.WithRoles},
	}
	for _, r := range rows {
		t.AppendRow(table.Row{r.field, r.n, percent(r.n, stats.Total)})
	}
	t.AppendSeparator()
	for _, method := range []profile.ExtractionMethod{
		profile.METHOD_STRUCTURED,
		profile.METHOD_MIXED,
		profile.METHOD_HEURISTIC,
	} {
		n := stats.ByMethod[method]
		t.AppendRow(table.Row{"method: " + string(method), n, percent(n, stats.Total)})
	}
	t.AppendFooter(table.Row{"total", stats.Total, ""})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderInvestors(records []profile.Record, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Firm", "Position", "Investments", "Method"})

	for i, rec := range sortByInvestments(records) {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(table.Row{rec.Name, rec.Firm, rec.Position, rec.InvestmentCount, rec.ExtractionMethod})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func formatAmount(amount *int64) string {
	if amount == nil {
		return "-"
	}
	return fmt.Sprintf("$%d", *amount)
}

func renderInvestor(rec profile.Record, score float64) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s (match %.2f)", rec.Name, score))

	links := make([]string, 0, len(rec.Links))
	for kind, link := range rec.Links {
		links = append(links, kind+": "+link)
	}
	sort.Strings(links)

	t.AppendRows([]table.Row{
		{"Position", rec.Position},
		{"Firm", rec.Firm},
		{"Location", rec.Location},
		{"Roles", strings.Join(rec.Roles, ", ")},
		{"Range", fmt.Sprintf(
			"%s - %s (target %s)",
			formatAmount(rec.InvestmentRange.Min),
			formatAmount(rec.InvestmentRange.Max),
			formatAmount(rec.InvestmentRange.Target),
		)},
		{"Fund size", formatAmount(rec.CurrentFundSize)},
		{"Areas", strings.Join(rec.AreasOfInterest, ", ")},
		{"Not interested", strings.Join(rec.NotInterestedIn, ", ")},
		{"Co-investors", strings.Join(rec.CoInvestors, ", ")},
		{"Scouts & angels", strings.Join(rec.ScoutsAndAngels, ", ")},
		{"Links", strings.Join(links, "\n")},
		{"Investments", fmt.Sprintf("%d on record, %d listed", rec.InvestmentCount, rec.Investments.Len())},
		{"Companies", strings.Join(rec.Investments.Companies(), ", ")},
		{"Method", rec.ExtractionMethod},
		{"Source", rec.SourceFile},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
