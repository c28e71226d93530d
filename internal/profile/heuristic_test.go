package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func heuristicOf(t *testing.T, body string) PartialRecord {
	t.Helper()
	parser, _ := newTestParser()
	return parser.ExtractHeuristic(newPage(t, "<html><body>"+body+"</body></html>"))
}

func labelled(label, value string) string {
	return `<div class="line-separated-row row">` +
		`<div class="col-xs-5"><span>` + label + `</span></div>` +
		`<div class="col-xs-7"><span>` + value + `</span></div>` +
		`</div>`
}

func TestExtractHeuristic(t *testing.T) {
	parser, rec := newTestParser()
	out := parser.ExtractHeuristic(newPage(t, markupOnlyHtml))

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
		Investments: Investments{Tabulated: []TabulatedInvestment{
			{
				Company: "Widgetly",
				Rounds: []Round{
					{Stage: "Series A", Date: ptr("Jan 2020"), Amount: ptr("$5M"), IsLead: true},
					{Stage: "Seed", Date: ptr("Mar 2019")},
					{Stage: "Series B", Date: ptr("Feb 2022"), Amount: ptr("$20M")},
				},
				TotalRaised: ptr("$27M"),
				Coinvestors: []string{"Sam Lee", "Ana Ruiz"},
			},
			{
				Company:     "Databox",
				Rounds:      []Round{{Stage: "Angel"}},
				TotalRaised: ptr("$1M"),
				Coinvestors: []string{},
			},
		}},
		InvestmentCount: 12,
		CurrentFundSize: ptr[int64](150000000),
		Roles:           []string{"Investor", "Board Member"},
		CoInvestors:     []string{"Sam Lee", "Ana Ruiz", "Bo Chen", "Kim Park", "Lee Ong"},
		ScoutsAndAngels: []string{"Pat Moss"},
	}
	if diff := cmp.Diff(expected, out); diff != "" {
		t.Fatalf("heuristic partial (-want +got):\n%s", diff)
	}

	require.Empty(t, rec.Reports("broken"))
	require.Empty(t, rec.Reports("warning"))
}

func TestExtractHeuristicEmptyDocument(t *testing.T) {
	out := heuristicOf(t, "")
	require.True(t, out.Empty())
}

func TestHeuristicPosition(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		position string
		firm     string
	}{
		{
			name:     "middot",
			body:     labelled("Current Investing Position", "Beta Capital · Principal"),
			position: "Principal",
			firm:     "Beta Capital",
		},
		{
			name:     "firm link",
			body:     labelled("Current Investing Position", "Principal <a href=\"/firm/beta\">Beta Capital</a>"),
			position: "Principal",
			firm:     "Beta Capital",
		},
		{
			name: "subheader fallback",
			body: labelled("Investment Range", "$1M - $2M") +
				`<div class="subheader lower-subheader pb2">General Partner at Gamma Fund</div>`,
			position: "General Partner",
			firm:     "Gamma Fund",
		},
		{
			name:     "middot with trailing location",
			body:     labelled("Current Investing Position", "Acme · Partner · NYC"),
			position: "Partner",
			firm:     "Acme",
		},
		{
			name:     "partial middot",
			body:     labelled("Current Investing Position", "Beta Capital ·"),
			position: "",
			firm:     "Beta Capital",
		},
		{
			name: "partial row replaced by subheader",
			body: labelled("Current Investing Position", "Beta Capital ·") +
				`<div class="subheader lower-subheader pb2">Principal at Beta Capital</div>`,
			position: "Principal",
			firm:     "Beta Capital",
		},
		{
			name:     "subheader without at",
			body:     `<div class="subheader lower-subheader pb2">Operator, ex-founder</div>`,
			position: "",
			firm:     "",
		},
		{
			name:     "at inside a word",
			body:     `<div class="subheader lower-subheader pb2">Data Scientist</div>`,
			position: "",
			firm:     "",
		},
	}

	for _, test := range testCases {
		out := heuristicOf(t, test.body)
		require.Equal(t, test.position, out.Position, test.name)
		require.Equal(t, test.firm, out.Firm, test.name)
	}
}

func TestHeuristicInvestmentRange(t *testing.T) {
	testCases := []struct {
		value    string
		expected InvestmentRange
	}{
		{value: "$50K - $250K", expected: InvestmentRange{Min: ptr[int64](50000), Max: ptr[int64](250000)}},
		{value: "$1M", expected: InvestmentRange{}},
		{value: "$1M - $2M - $3M", expected: InvestmentRange{}},
		{value: "$1M - unknown", expected: InvestmentRange{Min: ptr[int64](1000000)}},
	}

	for _, test := range testCases {
		out := heuristicOf(t, labelled("Investment Range", test.value))
		if diff := cmp.Diff(test.expected, out.InvestmentRange); diff != "" {
			t.Fatalf("range %q (-want +got):\n%s", test.value, diff)
		}
	}
}

func TestHeuristicInvestmentCount(t *testing.T) {
	require.Equal(t, 7, heuristicOf(t, labelled("Investments On Record", "7")).InvestmentCount)
	require.Equal(t, 0, heuristicOf(t, labelled("Investments On Record", "many")).InvestmentCount)
	require.Equal(t, 0, heuristicOf(t, labelled("Investments On Record", "0")).InvestmentCount)
}

func TestHeuristicCoinvestorsBelongToPrecedingCompany(t *testing.T) {
	out := heuristicOf(t, `<table><tbody>
		<tr><td><div>Alpha</div></td><td><div>Seed</div></td><td><div>$1M</div></td></tr>
		<tr><td colspan="3"><span>Co-investors: X Partners (X Fund), Y</span></td></tr>
		<tr><td><div>Bravo</div></td><td><div>Series A</div></td><td><div></div></td></tr>
		<tr><td colspan="2"><span>Co-investors: Z</span></td></tr>
		<tr><td><div>Charlie</div></td><td><div>Angel</div></td><td><div>$2M</div></td></tr>
	</tbody></table>`)

	investments := out.Investments.Tabulated
	require.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, out.Investments.Companies())
	require.Equal(t, []string{"X Partners", "Y"}, investments[0].Coinvestors)
	require.Equal(t, []string{}, investments[1].Coinvestors)
	require.Nil(t, investments[1].TotalRaised)
	require.Equal(t, []string{}, investments[2].Coinvestors)
}

func TestHeuristicNetworkLimit(t *testing.T) {
	body := `<div><h3>Investors who invest with Kai</h3>`
	for _, name := range []string{"A", "B", "", "C", "D", "E", "F"} {
		body += `<div class="network-row"><a class="network-row-investor-name">` + name + `</a></div>`
	}
	body += `</div>`

	out := heuristicOf(t, body)
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, out.CoInvestors)
	require.Nil(t, out.ScoutsAndAngels)
}

func TestHeuristicRoundFragments(t *testing.T) {
	testCases := []struct {
		name   string
		rounds string
		want   []Round
	}{
		{
			name:   "icon in its own wrapper",
			rounds: `<div>Series A • Jan 2020 • $5M <div class="lead"><img/></div></div>`,
			want:   []Round{{Stage: "Series A", Date: ptr("Jan 2020"), Amount: ptr("$5M"), IsLead: true}},
		},
		{
			name:   "wrapper around fragments",
			rounds: `<div><div>Seed • Mar 2019</div><div>Series B - Feb 2022 - $20M <span><img/></span></div></div>`,
			want: []Round{
				{Stage: "Seed", Date: ptr("Mar 2019")},
				{Stage: "Series B", Date: ptr("Feb 2022"), Amount: ptr("$20M"), IsLead: true},
			},
		},
		{
			name:   "icon only",
			rounds: `<div><div class="lead"><img/></div></div>`,
			want:   []Round{},
		},
	}

	for _, test := range testCases {
		out := heuristicOf(t, `<table><tbody><tr>`+
			`<td><div>Alpha</div></td><td>`+test.rounds+`</td><td><div>$1M</div></td>`+
			`</tr></tbody></table>`)
		require.Len(t, out.Investments.Tabulated, 1, test.name)
		if diff := cmp.Diff(test.want, out.Investments.Tabulated[0].Rounds); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", test.name, diff)
		}
	}
}
