package commands

import (
	"testing"

	"investorparser/internal/profile"

	"github.com/stretchr/testify/require"
)

func TestFindInvestor(t *testing.T) {
	records := []profile.Record{
		{Name: "Jane Doe", SourceFile: "jane.html"},
		{Name: "Janet Dough", SourceFile: "janet.html"},
		{Name: ""},
		{Name: "Sam Lee", SourceFile: "sam.html"},
	}

	rec, score, ok := findInvestor(records, "jane doe")
	require.True(t, ok)
	require.Equal(t, "jane.html", rec.SourceFile)
	require.InDelta(t, 1.0, score, 0.0001)

	rec, _, ok = findInvestor(records, "Sam  Le")
	require.True(t, ok)
	require.Equal(t, "sam.html", rec.SourceFile)

	_, _, ok = findInvestor(records, "Xavier Quartz")
	require.False(t, ok)

	_, _, ok = findInvestor(nil, "Jane Doe")
	require.False(t, ok)
}

func TestSortByInvestments(t *testing.T) {
	records := []profile.Record{
		{Name: "B", InvestmentCount: 3},
		{Name: "A", InvestmentCount: 3},
		{Name: "C", InvestmentCount: 10},
		{Name: "D"},
	}

	var names []string
	for _, rec := range sortByInvestments(records) {
		names = append(names, rec.Name)
	}
	require.Equal(t, []string{"C", "A", "B", "D"}, names)
	require.Equal(t, "B", records[0].Name)
}

func TestOrDefault(t *testing.T) {
	require.Equal(t, "pages", orDefault("", "pages"))
	require.Equal(t, "mine", orDefault("mine", "pages"))
	require.Equal(t, 4, orDefault(0, 4))
}
