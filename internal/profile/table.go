package profile

import (
	"strconv"
	"strings"

	"investorparser/pkg/htmlutil"
	"investorparser/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type tableState int

const (
	EXPECT_COMPANY_ROW tableState = iota
	EXPECT_OPTIONAL_COINVESTOR_ROW
)

// investmentTable accumulates tabulated investments keyed by company name,
// keeping the order in which companies first appear.
type investmentTable struct {
	index       map[string]int
	investments []TabulatedInvestment
}

func (t *investmentTable) company(name string) *TabulatedInvestment {
	if t.index == nil {
		t.index = map[string]int{}
	}
	i, ok := t.index[name]
	if !ok {
		i = len(t.investments)
		t.index[name] = i
		t.investments = append(t.investments, TabulatedInvestment{
			Company:     name,
			Rounds:      []Round{},
			Coinvestors: []string{},
		})
	}
	return &t.investments[i]
}

// investments walks the body rows of the investments table. Every company row may
// be followed by a single full width row listing the deal's co-investors, which
// belongs to that company only.
func (h heuristicPass) investments() []TabulatedInvestment {
	tbody := h.doc.Find("table").First().Find("tbody").First()
	if tbody.Length() == 0 {
		h.mismatch("investments table")
		return nil
	}
	rows := tbody.Find("tr")

	table := investmentTable{}
	state := EXPECT_COMPANY_ROW
	current := ""

	for i := 0; i < rows.Length(); i++ {
		row := rows.Eq(i)

		if state == EXPECT_OPTIONAL_COINVESTOR_ROW {
			state = EXPECT_COMPANY_ROW
			if names, ok := coinvestorSummary(row); ok {
				table.company(current).Coinvestors = names
				continue
			}
		}

		if htmlutil.HasClassContaining(row.Get(0), "coinvestor") {
			continue
		}
		name, ok := h.companyRow(row, &table)
		if !ok {
			continue
		}
		current = name
		state = EXPECT_OPTIONAL_COINVESTOR_ROW
	}

	return table.investments
}

func (h heuristicPass) companyRow(row *goquery.Selection, table *investmentTable) (string, bool) {
	cells := row.Find("td")
	if cells.Length() < 3 {
		return "", false
	}
	name := firstText(cells.Eq(0).Find("div"))
	if name == "" {
		return "", false
	}

	investment := table.company(name)
	if raised := firstText(cells.Eq(2).Find("div")); raised != "" {
		investment.TotalRaised = &raised
	}

	for _, div := range roundDivs(cells.Eq(1)) {
		desc := ParseRound(htmlutil.OwnText(div, atom.Div))
		investment.Rounds = append(investment.Rounds, Round{
			Stage:  desc.Stage,
			Date:   desc.Date,
			Amount: desc.Amount,
			IsLead: h.doc.FindNodes(div).Find("img").Length() > 0,
		})
	}
	return name, true
}

// roundDivs returns the divs of the rounds cell that carry text of their own, one
// per round fragment. Wrappers and icon-only divs are not fragments, an icon div
// belongs to the fragment enclosing it.
func roundDivs(cell *goquery.Selection) []*html.Node {
	var fragments []*html.Node
	for _, div := range cell.Find("div").Nodes {
		if htmlutil.OwnText(div, atom.Div) != "" {
			fragments = append(fragments, div)
		}
	}
	return fragments
}

// coinvestorSummary reads a full width "Co-investors: A, B (Fund)" row.
func coinvestorSummary(row *goquery.Selection) ([]string, bool) {
	var found *goquery.Selection
	row.Find("td[colspan]").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		span, err := strconv.Atoi(td.AttrOr("colspan", ""))
		if err == nil && span >= 3 {
			found = td
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}

	text := firstText(found.Find("span"))
	_, rest, ok := strings.Cut(text, markerCoinvestorRow)
	if !ok {
		return nil, false
	}

	names := []string{}
	for _, entry := range strings.Split(rest, ",") {
		if name := textutil.BeforeParen(entry); name != "" {
			names = append(names, name)
		}
	}
	return names, true
}
