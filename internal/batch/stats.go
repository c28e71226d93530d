package batch

import (
	"investorparser/internal/components/telemetry"
	"investorparser/internal/profile"
)

// Stats counts how many records have each kind of field filled.
type Stats struct {
	Total           int
	WithInvestments int
	WithAreas       int
	WithCoInvestors int
	WithScouts      int
	WithFundSize    int
	WithRoles       int
	ByMethod        map[profile.ExtractionMethod]int
}

func Summarize(records []profile.Record) Stats {
	stats := Stats{
		Total:    len(records),
		ByMethod: map[profile.ExtractionMethod]int{},
	}
	for _, rec := range records {
		stats.ByMethod[rec.ExtractionMethod]++
		if rec.Investments.Len() > 0 {
			stats.WithInvestments++
		}
		if len(rec.AreasOfInterest) > 0 {
			stats.WithAreas++
		}
		if len(rec.CoInvestors) > 0 {
			stats.WithCoInvestors++
		}
		if len(rec.ScoutsAndAngels) > 0 {
			stats.WithScouts++
		}
		if rec.CurrentFundSize != nil {
			stats.WithFundSize++
		}
		if len(rec.Roles) > 0 {
			stats.WithRoles++
		}
	}
	return stats
}

const report_batch_stats = "batch.stats"

// Report emits every counter as a point in time count.
func (s Stats) Report(tel telemetry.API) {
	tel.ReportCount(report_batch_stats+".total", int64(s.Total))
	tel.ReportCount(report_batch_stats+".investments", int64(s.WithInvestments))
	tel.ReportCount(report_batch_stats+".areas", int64(s.WithAreas))
	tel.ReportCount(report_batch_stats+".co_investors", int64(s.WithCoInvestors))
	tel.ReportCount(report_batch_stats+".scouts", int64(s.WithScouts))
	tel.ReportCount(report_batch_stats+".fund_size", int64(s.WithFundSize))
	tel.ReportCount(report_batch_stats+".roles", int64(s.WithRoles))
	for method, count := range s.ByMethod {
		tel.ReportCount(report_batch_stats+".method."+string(method), int64(count))
	}
}
