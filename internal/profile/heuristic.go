package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"investorparser/internal/components/telemetry"
	"investorparser/pkg/htmlutil"
	"investorparser/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

const (
	report_heuristic_anchor = "heuristic.anchor"
	report_heuristic_amount = "heuristic.amount"
)

const (
	labelPosition      = "CURRENT INVESTING POSITION"
	labelRange         = "INVESTMENT RANGE"
	labelSweetSpot     = "SWEET SPOT"
	labelFundSize      = "CURRENT FUND SIZE"
	labelInvestmentsOn = "INVESTMENTS ON RECORD"

	markerSectorRankings = "Sector & Stage Rankings"
	markerCoInvestors    = "Investors who invest with"
	markerScoutsAngels   = "Scouts & Angels Affiliated With"
	markerCoinvestorRow  = "Co-investors:"

	networkRowLimit = 5
)

// ExtractHeuristic builds a partial record purely from the rendered document.
func (p Parser) ExtractHeuristic(page Page) PartialRecord {
	h := heuristicPass{tel: p.tel, doc: page.Doc, source: page.Source}
	return h.run()
}

type heuristicPass struct {
	tel    telemetry.API
	doc    *goquery.Document
	source string
}

func (h heuristicPass) mismatch(anchor string) {
	h.tel.ReportDebug(report_heuristic_anchor, fmt.Errorf("%w: %s", ErrStructuralMismatch, anchor), h.source)
}

func (h heuristicPass) amount(label, text string) *int64 {
	value, err := ParseAmount(text)
	if err != nil {
		h.tel.ReportDebug(report_heuristic_amount, fmt.Errorf("%s: %w", label, err), h.source)
		return nil
	}
	return &value
}

// firstText is the cleaned text of the first node of the selection, "" when empty.
func firstText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return htmlutil.NodeText(s.Get(0))
}

func (h heuristicPass) run() PartialRecord {
	var out PartialRecord
	if h.doc == nil {
		return out
	}

	out.Name = firstText(h.doc.Find("h1.f3.f1-ns.mv1"))
	if out.Name == "" {
		h.mismatch("name heading")
	}
	out.Roles = h.roles()

	rows := h.labelledRows()
	if row, ok := rows.find(labelPosition); ok {
		out.Firm, out.Position = positionFromRow(row)
	}
	if out.Firm == "" || out.Position == "" {
		if position, firm, ok := h.positionFromSubheader(); ok {
			out.Position, out.Firm = position, firm
		}
	}

	out.Location = firstText(h.doc.Find("span.f6.glyphicon.glyphicon-map-marker + span"))
	if out.Location == "" {
		h.mismatch("map marker")
	}

	if row, ok := rows.find(labelRange); ok {
		parts := strings.Split(row.value, "-")
		if len(parts) == 2 {
			out.InvestmentRange.Min = h.amount(labelRange, parts[0])
			out.InvestmentRange.Max = h.amount(labelRange, parts[1])
		}
	}
	if row, ok := rows.find(labelSweetSpot); ok {
		out.InvestmentRange.Target = h.amount(labelSweetSpot, row.value)
	}
	if row, ok := rows.find(labelFundSize); ok {
		out.CurrentFundSize = h.amount(labelFundSize, row.value)
	}
	if row, ok := rows.find(labelInvestmentsOn); ok {
		count, err := strconv.Atoi(strings.TrimSpace(row.value))
		if err == nil && count > 0 {
			out.InvestmentCount = count
		}
	}

	out.AreasOfInterest = h.areasOfInterest()
	out.CoInvestors = h.networkSection(markerCoInvestors)
	out.ScoutsAndAngels = h.networkSection(markerScoutsAngels)
	out.Investments.Tabulated = h.investments()
	return out
}

func (h heuristicPass) roles() []string {
	var roles []string
	h.doc.Find("div.subheader.white-subheader.b.pb1 span").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("middot-separator") {
			return
		}
		if role := htmlutil.CleanText(s.Text()); role != "" {
			roles = append(roles, role)
		}
	})
	return roles
}

type labelledRow struct {
	label string
	value string
	cell  *goquery.Selection
}

type labelledRows []labelledRow

// find returns the first row whose label contains the given label, ignoring case.
func (rows labelledRows) find(label string) (labelledRow, bool) {
	for _, r := range rows {
		if textutil.MatchName(r.label, []string{label}) {
			return r, true
		}
	}
	return labelledRow{}, false
}

func (h heuristicPass) labelledRows() labelledRows {
	var rows labelledRows
	h.doc.Find("div.line-separated-row.row").Each(func(_ int, row *goquery.Selection) {
		label := row.Find("div.col-xs-5 span").First()
		value := row.Find("div.col-xs-7 span").First()
		if label.Length() == 0 || value.Length() == 0 {
			return
		}
		rows = append(rows, labelledRow{
			label: htmlutil.CleanText(label.Text()),
			value: htmlutil.CleanText(value.Text()),
			cell:  row.Find("div.col-xs-7").First(),
		})
	})
	if len(rows) == 0 {
		h.mismatch("labelled rows")
	}
	return rows
}

// positionFromRow applies the middot rule, then the firm link rule, and returns at
// the first that yields both values. Otherwise the first partial result is kept.
func positionFromRow(row labelledRow) (firm, position string) {
	var partialFirm, partialPosition string
	keep := func(f, p string) {
		if partialFirm == "" && partialPosition == "" {
			partialFirm, partialPosition = f, p
		}
	}

	if strings.Contains(row.value, "·") {
		// anything after a second separator (usually the location) is dropped
		parts := strings.Split(row.value, "·")
		f := strings.TrimSpace(parts[0])
		p := strings.TrimSpace(parts[1])
		if f != "" && p != "" {
			return f, p
		}
		keep(f, p)
	}

	if link := row.cell.Find("a").First(); link.Length() > 0 {
		f := htmlutil.CleanText(link.Text())
		p := row.value
		if f != "" {
			p = strings.Replace(p, f, "", 1)
		}
		p = strings.Trim(p, "· \t\n")
		if f != "" && p != "" {
			return f, p
		}
		keep(f, p)
	}

	return partialFirm, partialPosition
}

var subheaderAtRegex = regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`)

func (h heuristicPass) positionFromSubheader() (position, firm string, ok bool) {
	text := firstText(h.doc.Find("div.subheader.lower-subheader.pb2"))
	groups := subheaderAtRegex.FindStringSubmatch(text)
	if len(groups) < 3 {
		return "", "", false
	}
	position = strings.TrimSpace(groups[1])
	firm = strings.TrimSpace(groups[2])
	return position, firm, position != "" && firm != ""
}

// sectionContainer returns the div enclosing the text that marks a section.
func (h heuristicPass) sectionContainer(marker string) *goquery.Selection {
	if len(h.doc.Nodes) == 0 {
		return nil
	}
	text := htmlutil.FindTextNode(h.doc.Nodes[0], marker)
	container := htmlutil.ClosestAncestor(text, atom.Div)
	if container == nil {
		h.mismatch(marker)
		return nil
	}
	return h.doc.FindNodes(container)
}

func (h heuristicPass) areasOfInterest() []string {
	container := h.sectionContainer(markerSectorRankings)
	if container == nil {
		return nil
	}
	chips := htmlutil.NextElement(container.Get(0), atom.Div)
	if chips == nil {
		h.mismatch("sector chips")
		return nil
	}

	var areas []string
	seen := map[string]bool{}
	h.doc.FindNodes(chips).Find("a.vc-list-chip").Each(func(_ int, chip *goquery.Selection) {
		area := textutil.BeforeParen(htmlutil.CleanText(chip.Text()))
		if area == "" || seen[area] {
			return
		}
		seen[area] = true
		areas = append(areas, area)
	})
	return areas
}

func (h heuristicPass) networkSection(marker string) []string {
	container := h.sectionContainer(marker)
	if container == nil {
		return nil
	}

	var names []string
	container.Find("div.network-row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		name := firstText(row.Find("a.network-row-investor-name"))
		if name != "" {
			names = append(names, name)
		}
		return len(names) < networkRowLimit
	})
	return names
}
