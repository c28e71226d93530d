package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergePrecedence(t *testing.T) {
	structured := PartialRecord{
		Firm:            "Structured Capital",
		AreasOfInterest: []string{"Climate"},
	}
	heuristic := PartialRecord{
		Name:            "Ida Wells",
		Firm:            "Heuristic Partners",
		Location:        "Austin, TX",
		AreasOfInterest: []string{"Fintech"},
		Roles:           []string{"Angel"},
	}

	rec := Merge(structured, heuristic)
	require.Equal(t, "Structured Capital", rec.Firm)
	require.Equal(t, "Ida Wells", rec.Name)
	require.Equal(t, "Austin, TX", rec.Location)
	require.Equal(t, []string{"Climate"}, rec.AreasOfInterest)
	require.Equal(t, []string{"Angel"}, rec.Roles)

	require.Equal(t, METHOD_STRUCTURED, rec.Provenance["firm"])
	require.Equal(t, METHOD_HEURISTIC, rec.Provenance["name"])
	require.NotContains(t, rec.Provenance, "position")
}

func TestMergeEmptyFields(t *testing.T) {
	rec := Merge(PartialRecord{}, PartialRecord{})

	require.Equal(t, "", rec.Name)
	require.NotNil(t, rec.AreasOfInterest)
	require.Empty(t, rec.AreasOfInterest)
	require.NotNil(t, rec.NotInterestedIn)
	require.NotNil(t, rec.Links)
	require.Empty(t, rec.Links)
	require.True(t, rec.InvestmentRange.Empty())
	require.Equal(t, 0, rec.InvestmentCount)
	require.Equal(t, METHOD_HEURISTIC, rec.ExtractionMethod)
}

func TestMergeInvestmentRange(t *testing.T) {
	structured := PartialRecord{
		InvestmentRange: InvestmentRange{Min: ptr[int64](0), Max: ptr[int64](1000000)},
	}
	heuristic := PartialRecord{
		InvestmentRange: InvestmentRange{Min: ptr[int64](25000), Max: ptr[int64](900000), Target: ptr[int64](400000)},
	}

	rec := Merge(structured, heuristic)
	require.Equal(t, InvestmentRange{
		Min:    ptr[int64](0),
		Max:    ptr[int64](1000000),
		Target: ptr[int64](400000),
	}, rec.InvestmentRange)

	require.Equal(t, METHOD_STRUCTURED, rec.Provenance["investment_range.min"])
	require.Equal(t, METHOD_HEURISTIC, rec.Provenance["investment_range.target"])
}

func TestMergeInvestments(t *testing.T) {
	recorded := Investments{Recorded: []RecordedInvestment{{Company: "Orbit"}, {Company: "Lumen"}}}
	tabulated := Investments{Tabulated: []TabulatedInvestment{{Company: "Widgetly"}}}

	testCases := []struct {
		name       string
		structured PartialRecord
		heuristic  PartialRecord
		companies  []string
		count      int
		method     ExtractionMethod
	}{
		{
			name:       "structured list and name",
			structured: PartialRecord{Name: "Ida", Investments: recorded, InvestmentCount: 40},
			heuristic:  PartialRecord{Investments: tabulated, InvestmentCount: 3},
			companies:  []string{"Orbit", "Lumen"},
			count:      40,
			method:     METHOD_STRUCTURED,
		},
		{
			name:       "structured list without count",
			structured: PartialRecord{Name: "Ida", Investments: recorded},
			heuristic:  PartialRecord{Investments: tabulated},
			companies:  []string{"Orbit", "Lumen"},
			count:      2,
			method:     METHOD_STRUCTURED,
		},
		{
			name:       "structured name only",
			structured: PartialRecord{Name: "Ida"},
			heuristic:  PartialRecord{Investments: tabulated, InvestmentCount: 30},
			companies:  []string{"Widgetly"},
			count:      1,
			method:     METHOD_MIXED,
		},
		{
			name:       "structured list without name",
			structured: PartialRecord{Investments: recorded},
			heuristic:  PartialRecord{Name: "Ida"},
			companies:  []string{"Orbit", "Lumen"},
			count:      2,
			method:     METHOD_MIXED,
		},
		{
			name:       "structured count only",
			structured: PartialRecord{InvestmentCount: 9},
			heuristic:  PartialRecord{Investments: tabulated},
			companies:  []string{"Widgetly"},
			count:      9,
			method:     METHOD_MIXED,
		},
		{
			name:      "heuristic only",
			heuristic: PartialRecord{Name: "Ida", Investments: tabulated, InvestmentCount: 30},
			companies: []string{"Widgetly"},
			count:     1,
			method:    METHOD_HEURISTIC,
		},
	}

	for _, test := range testCases {
		rec := Merge(test.structured, test.heuristic)
		require.Equal(t, test.companies, rec.Investments.Companies(), test.name)
		require.Equal(t, test.count, rec.InvestmentCount, test.name)
		require.Equal(t, test.method, rec.ExtractionMethod, test.name)
	}
}

func TestMergeRangeBoundsFromEachSource(t *testing.T) {
	rec := Merge(
		PartialRecord{InvestmentRange: InvestmentRange{Min: ptr[int64](10000)}},
		PartialRecord{InvestmentRange: InvestmentRange{Max: ptr[int64](90000)}},
	)
	require.Equal(t, ptr[int64](10000), rec.InvestmentRange.Min)
	require.Equal(t, ptr[int64](90000), rec.InvestmentRange.Max)
	require.Nil(t, rec.InvestmentRange.Target)
	require.Equal(t, METHOD_STRUCTURED, rec.Provenance["investment_range.min"])
	require.Equal(t, METHOD_HEURISTIC, rec.Provenance["investment_range.max"])
}

func TestMergeRangeMatchesPerBoundSelection(t *testing.T) {
	pick := func(s, h *int64) *int64 {
		if s != nil {
			return s
		}
		return h
	}
	bound := func(set bool, v int64) *int64 {
		if !set {
			return nil
		}
		return ptr(v)
	}

	for mask := 0; mask < 64; mask++ {
		structured := InvestmentRange{
			Min:    bound(mask&1 != 0, 0),
			Max:    bound(mask&2 != 0, 200),
			Target: bound(mask&4 != 0, 300),
		}
		heuristic := InvestmentRange{
			Min:    bound(mask&8 != 0, 10),
			Max:    bound(mask&16 != 0, 20),
			Target: bound(mask&32 != 0, 30),
		}

		got := mergeRange(provenance{}, structured, heuristic)
		want := InvestmentRange{
			Min:    pick(structured.Min, heuristic.Min),
			Max:    pick(structured.Max, heuristic.Max),
			Target: pick(structured.Target, heuristic.Target),
		}
		require.Equal(t, want, got, "mask %06b", mask)
	}
}
