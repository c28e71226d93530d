package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractStructured(t *testing.T) {
	parser, rec := newTestParser()
	out := parser.ExtractStructured(newPage(t, profileHtml))

	expected := PartialRecord{
		Name:     "Jane Doe",
		Position: "Partner",
		Firm:     "Acme Ventures",
		Location: "San Francisco, CA",
		InvestmentRange: InvestmentRange{
			Min:    ptr[int64](100000),
			Max:    ptr[int64](2000000),
			Target: ptr[int64](500000),
		},
		AreasOfInterest: []string{"Fintech", "SaaS", "Marketplaces"},
		NotInterestedIn: []string{"Crypto"},
		Investments: Investments{Recorded: []RecordedInvestment{
			{
				Company: "Widgetly",
				Round:   ptr("Series A"),
				Date:    ptr("2020-01-15"),
				Amount:  ptr[int64](5000000),
				IsLead:  true,
			},
			{
				Company: "Databox",
				Date:    ptr("2021-06-01"),
			},
		}},
		InvestmentCount: 12,
		Links: map[string]string{
			"linkedin": "https://linkedin.com/in/janedoe",
			"twitter":  "https://twitter.com/janedoe",
			"url":      "https://janedoe.vc",
		},
	}
	if diff := cmp.Diff(expected, out); diff != "" {
		t.Fatalf("structured partial (-want +got):\n%s", diff)
	}

	require.Empty(t, rec.Reports("warning"))
	require.Empty(t, rec.Reports("broken"))
}

func TestExtractStructuredWithoutCache(t *testing.T) {
	parser, rec := newTestParser()
	out := parser.ExtractStructured(newPage(t, markupOnlyHtml))

	require.True(t, out.Empty())
	warnings := rec.Reports("warning")
	require.Len(t, warnings, 1)
	require.Equal(t, "profile_parser: structured.load-cache", warnings[0].ID)
}

func TestExtractStructuredEdgeCases(t *testing.T) {
	document := `<script>window.__APOLLO_STATE__ = {
		"PublicInvestorProfile:1": {
			"min_investment": 0,
			"max_investment": "lots",
			"target_investment": -5,
			"person": {"typename": "Person", "id": "gone"},
			"firm": {"typename": "Firm", "id": "gone"},
			"investments_on_record": {
				"record_count": 0,
				"edges": [
					{"node": {"company": {"typename": "Company", "id": "1"}, "funding_round": {"typename": "FundingRound", "id": "2"}}},
					{"node": {"company": {"typename": "Company", "id": "3"}}}
				]
			}
		},
		"Company:1": {"name": "Orbit"},
		"Company:3": {"name": ""},
		"FundingRound:2": {"round_name": "Seed", "amount": 0}
	};</script>`

	parser, _ := newTestParser()
	out := parser.ExtractStructured(newPage(t, document))

	require.Empty(t, out.Name)
	require.Nil(t, out.Links)
	require.Empty(t, out.Firm)

	require.Equal(t, ptr[int64](0), out.InvestmentRange.Min)
	require.Nil(t, out.InvestmentRange.Max)
	require.Nil(t, out.InvestmentRange.Target)

	require.Equal(t, 0, out.InvestmentCount)
	require.Equal(t, []RecordedInvestment{
		{Company: "Orbit", Round: ptr("Seed")},
	}, out.Investments.Recorded)
}
