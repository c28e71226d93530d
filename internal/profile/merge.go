package profile

import (
	"dario.cat/mergo"
)

type provenance map[string]ExtractionMethod

func pickString(prov provenance, field, structured, heuristic string) string {
	if structured != "" {
		prov[field] = METHOD_STRUCTURED
		return structured
	}
	if heuristic != "" {
		prov[field] = METHOD_HEURISTIC
	}
	return heuristic
}

func pickSlice[T any](prov provenance, field string, structured, heuristic []T) []T {
	if len(structured) > 0 {
		prov[field] = METHOD_STRUCTURED
		return structured
	}
	if len(heuristic) > 0 {
		prov[field] = METHOD_HEURISTIC
		return heuristic
	}
	return []T{}
}

func pickAmount(prov provenance, field string, structured, heuristic *int64) *int64 {
	if structured != nil {
		prov[field] = METHOD_STRUCTURED
		return structured
	}
	if heuristic != nil {
		prov[field] = METHOD_HEURISTIC
	}
	return heuristic
}

// mergeRange fills each absent bound of the structured range from the heuristic
// one independently.
func mergeRange(prov provenance, structured, heuristic InvestmentRange) InvestmentRange {
	bounds := []struct {
		field string
		s, h  *int64
	}{
		{"investment_range.min", structured.Min, heuristic.Min},
		{"investment_range.max", structured.Max, heuristic.Max},
		{"investment_range.target", structured.Target, heuristic.Target},
	}
	picked := make([]*int64, len(bounds))
	for i, b := range bounds {
		picked[i] = pickAmount(prov, b.field, b.s, b.h)
	}

	out := structured
	// set bounds, zero included, are never dereferenced or overwritten
	err := mergo.Merge(&out, heuristic, mergo.WithoutDereference)
	if err != nil {
		return InvestmentRange{Min: picked[0], Max: picked[1], Target: picked[2]}
	}
	return out
}

// Merge combines the two partial records. Each field keeps the structured value
// when it is non-empty and falls back to the heuristic one, the investment range is
// merged per bound and the investment list is chosen as a whole.
func Merge(structured, heuristic PartialRecord) Record {
	prov := provenance{}

	rec := Record{
		Name:            pickString(prov, "name", structured.Name, heuristic.Name),
		Position:        pickString(prov, "position", structured.Position, heuristic.Position),
		Firm:            pickString(prov, "firm", structured.Firm, heuristic.Firm),
		Location:        pickString(prov, "location", structured.Location, heuristic.Location),
		InvestmentRange: mergeRange(prov, structured.InvestmentRange, heuristic.InvestmentRange),
		AreasOfInterest: pickSlice(prov, "areas_of_interest", structured.AreasOfInterest, heuristic.AreasOfInterest),
		NotInterestedIn: pickSlice(prov, "not_interested_in", structured.NotInterestedIn, heuristic.NotInterestedIn),
		CurrentFundSize: pickAmount(prov, "current_fund_size", structured.CurrentFundSize, heuristic.CurrentFundSize),
		Roles:           pickSlice(prov, "roles", structured.Roles, heuristic.Roles),
		CoInvestors:     pickSlice(prov, "co_investors", structured.CoInvestors, heuristic.CoInvestors),
		ScoutsAndAngels: pickSlice(prov, "scouts_angels", structured.ScoutsAndAngels, heuristic.ScoutsAndAngels),
	}

	switch {
	case len(structured.Links) > 0:
		rec.Links = structured.Links
		prov["links"] = METHOD_STRUCTURED
	case len(heuristic.Links) > 0:
		rec.Links = heuristic.Links
		prov["links"] = METHOD_HEURISTIC
	default:
		rec.Links = map[string]string{}
	}

	switch {
	case structured.Investments.Len() > 0:
		rec.Investments = structured.Investments
		prov["investments"] = METHOD_STRUCTURED
	case heuristic.Investments.Len() > 0:
		rec.Investments = heuristic.Investments
		prov["investments"] = METHOD_HEURISTIC
	}

	if structured.InvestmentCount > 0 {
		rec.InvestmentCount = structured.InvestmentCount
		prov["investment_count"] = METHOD_STRUCTURED
	} else if rec.Investments.Len() > 0 {
		rec.InvestmentCount = rec.Investments.Len()
		prov["investment_count"] = prov["investments"]
	}

	switch {
	case structured.Name != "" && structured.Investments.Len() > 0:
		rec.ExtractionMethod = METHOD_STRUCTURED
	case structured.Empty():
		rec.ExtractionMethod = METHOD_HEURISTIC
	default:
		rec.ExtractionMethod = METHOD_MIXED
	}

	rec.Provenance = prov
	return rec
}
