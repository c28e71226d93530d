package profile

import (
	"fmt"
	"strings"

	"investorparser/pkg/textutil"
)

const (
	report_structured_load_cache = "structured.load-cache"
	report_structured_resolve    = "structured.resolve"
	report_structured_amount     = "structured.amount"
)

// person attributes that carry profile links, the link type is the attribute
// name without the "_url" suffix.
var personLinkAttributes = []string{
	"linkedin_url",
	"twitter_url",
	"facebook_url",
	"crunchbase_url",
	"angellist_url",
	"url",
}

// ExtractStructured builds a partial record purely from the embedded cache graph.
func (p Parser) ExtractStructured(page Page) PartialRecord {
	graph, err := LoadCacheGraph(page.Text)
	if err != nil {
		p.tel.ReportWarning(report_structured_load_cache, err, page.Source)
		return PartialRecord{}
	}
	p.tel.ReportDebug(report_structured_load_cache, graph.Len(), graph.ProfileKey, graph.PersonKey)
	return p.fromGraph(graph, page.Source)
}

func (p Parser) fromGraph(graph CacheGraph, source string) PartialRecord {
	var out PartialRecord

	profile, ok := graph.Profile()
	if !ok {
		p.tel.ReportDebug(report_structured_resolve, fmt.Errorf("%w: no %s entity", ErrUnresolvedReference, strings.TrimSuffix(profileTypePrefix, ":")), source)
		return out
	}

	if person, ok := graph.Person(); ok {
		out.Name = strings.TrimSpace(person.String("name"))
		out.Links = personLinks(person)
	}

	out.Position = profile.String("position")

	if firm, ok := graph.Resolve(profile["firm"]); ok {
		out.Firm = firm.String("name")
	} else if profile["firm"] != nil {
		p.tel.ReportDebug(report_structured_resolve, fmt.Errorf("%w: firm", ErrUnresolvedReference), source)
	}

	if location, ok := graph.Resolve(profile["location"]); ok {
		out.Location = location.String("display_name")
	} else if profile["location"] != nil {
		p.tel.ReportDebug(report_structured_resolve, fmt.Errorf("%w: location", ErrUnresolvedReference), source)
	}

	out.InvestmentRange = InvestmentRange{
		Min:    p.profileAmount(profile, "min_investment", source),
		Max:    p.profileAmount(profile, "max_investment", source),
		Target: p.profileAmount(profile, "target_investment", source),
	}
	if out.InvestmentRange.Target != nil && *out.InvestmentRange.Target <= 0 {
		out.InvestmentRange.Target = nil
	}

	out.AreasOfInterest = textutil.SplitList(profile.String("areas_of_interest_freeform"))
	out.NotInterestedIn = textutil.SplitList(profile.String("no_current_interest_freeform"))

	out.Investments.Recorded, out.InvestmentCount = p.recordedInvestments(graph, profile, source)
	return out
}

func personLinks(person Entity) map[string]string {
	links := map[string]string{}
	for _, attr := range personLinkAttributes {
		link := strings.TrimSpace(person.String(attr))
		if link == "" {
			continue
		}
		links[strings.TrimSuffix(attr, "_url")] = link
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

func (p Parser) profileAmount(profile Entity, attr, source string) *int64 {
	value, ok := profile[attr]
	if !ok || value == nil {
		return nil
	}
	amount := NormalizeAmount(value)
	if amount == nil {
		p.tel.ReportDebug(report_structured_amount, fmt.Errorf("%w: %s = %v", ErrUnparseableAmount, attr, value), source)
	}
	return amount
}

func (p Parser) recordedInvestments(graph CacheGraph, profile Entity, source string) ([]RecordedInvestment, int) {
	key, ok := profile.KeyWithPrefix(recordedInvestmentsPrefix)
	if !ok {
		return nil, 0
	}
	collection, ok := graph.Deref(profile[key])
	if !ok {
		p.tel.ReportDebug(report_structured_resolve, fmt.Errorf("%w: %s", ErrUnresolvedReference, key), source)
		return nil, 0
	}

	count := 0
	if declared := NormalizeAmount(collection["record_count"]); declared != nil && *declared > 0 {
		count = int(*declared)
	}

	edges, _ := collection["edges"].([]any)
	var investments []RecordedInvestment
	for i, rawEdge := range edges {
		edge, ok := graph.Deref(rawEdge)
		if !ok {
			continue
		}
		node, ok := graph.Deref(edge["node"])
		if !ok {
			continue
		}

		company, ok := graph.Resolve(node["company"])
		if !ok || company.String("name") == "" {
			p.tel.ReportDebug(report_structured_resolve, fmt.Errorf("%w: company of edge %d", ErrUnresolvedReference, i), source)
			continue
		}

		investment := RecordedInvestment{
			Company: company.String("name"),
			Date:    optional(node.String("date")),
		}
		investment.IsLead, _ = node["is_lead"].(bool)

		if round, ok := graph.Resolve(node["funding_round"]); ok {
			investment.Round = optional(round.String("round_name"))
			if amount := NormalizeAmount(round["amount"]); amount != nil && *amount != 0 {
				investment.Amount = amount
			}
		}

		investments = append(investments, investment)
	}
	return investments, count
}
