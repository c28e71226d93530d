package profile

import (
	"bytes"
	"encoding/json"
)

type ExtractionMethod string

const (
	METHOD_STRUCTURED ExtractionMethod = "structured"
	METHOD_HEURISTIC  ExtractionMethod = "heuristic"
	METHOD_MIXED      ExtractionMethod = "mixed"
)

// InvestmentRange holds the investor's check size thresholds, nil means absent.
type InvestmentRange struct {
	Min    *int64 `json:"min"`
	Max    *int64 `json:"max"`
	Target *int64 `json:"target"`
}

func (r InvestmentRange) Empty() bool {
	return r.Min == nil && r.Max == nil && r.Target == nil
}

// RecordedInvestment is an investment read from the embedded cache graph.
type RecordedInvestment struct {
	Company string  `json:"company"`
	Round   *string `json:"round"`
	Date    *string `json:"date"`
	Amount  *int64  `json:"amount"`
	IsLead  bool    `json:"is_lead"`
}

// Round is one funding round fragment of a tabulated investment.
type Round struct {
	Stage  string  `json:"stage"`
	Date   *string `json:"date"`
	Amount *string `json:"amount"`
	IsLead bool    `json:"is_lead"`
}

// TabulatedInvestment is an investment read from the rendered investments table.
type TabulatedInvestment struct {
	Company     string   `json:"company"`
	Rounds      []Round  `json:"rounds"`
	TotalRaised *string  `json:"total_raised"`
	Coinvestors []string `json:"coinvestors"`
}

// Investments holds the investment list of exactly one source. The two shapes
// are kept as-is, they are never merged item by item.
type Investments struct {
	Recorded  []RecordedInvestment
	Tabulated []TabulatedInvestment
}

func (i Investments) Len() int {
	if i.Recorded != nil {
		return len(i.Recorded)
	}
	return len(i.Tabulated)
}

// Companies lists the company names in order, whatever the shape.
func (i Investments) Companies() []string {
	var out []string
	for _, inv := range i.Recorded {
		out = append(out, inv.Company)
	}
	for _, inv := range i.Tabulated {
		out = append(out, inv.Company)
	}
	return out
}

func (i Investments) MarshalJSON() ([]byte, error) {
	if len(i.Recorded) > 0 {
		return json.Marshal(i.Recorded)
	}
	if len(i.Tabulated) > 0 {
		return json.Marshal(i.Tabulated)
	}
	return []byte("[]"), nil
}

func (i *Investments) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	err := json.Unmarshal(data, &items)
	if err != nil {
		return err
	}
	*i = Investments{}
	if len(items) == 0 {
		return nil
	}

	var probe map[string]json.RawMessage
	err = json.Unmarshal(items[0], &probe)
	if err != nil {
		return err
	}
	if _, tabulated := probe["rounds"]; tabulated {
		return json.Unmarshal(data, &i.Tabulated)
	}
	return json.Unmarshal(data, &i.Recorded)
}

// PartialRecord is what a single extraction source could find, every field may be empty.
type PartialRecord struct {
	Name            string
	Position        string
	Firm            string
	Location        string
	InvestmentRange InvestmentRange
	AreasOfInterest []string
	NotInterestedIn []string
	Investments     Investments
	InvestmentCount int
	Links           map[string]string
	CurrentFundSize *int64
	Roles           []string
	CoInvestors     []string
	ScoutsAndAngels []string
}

// Empty reports whether the source contributed nothing at all.
func (p PartialRecord) Empty() bool {
	return p.Name == "" &&
		p.Position == "" &&
		p.Firm == "" &&
		p.Location == "" &&
		p.InvestmentRange.Empty() &&
		len(p.AreasOfInterest) == 0 &&
		len(p.NotInterestedIn) == 0 &&
		p.Investments.Len() == 0 &&
		p.InvestmentCount == 0 &&
		len(p.Links) == 0 &&
		p.CurrentFundSize == nil &&
		len(p.Roles) == 0 &&
		len(p.CoInvestors) == 0 &&
		len(p.ScoutsAndAngels) == 0
}

// Record is the final investor profile.
type Record struct {
	Name             string            `json:"name"`
	Position         string            `json:"position"`
	Firm             string            `json:"firm"`
	Location         string            `json:"location"`
	InvestmentRange  InvestmentRange   `json:"investment_range"`
	AreasOfInterest  []string          `json:"areas_of_interest"`
	NotInterestedIn  []string          `json:"not_interested_in"`
	Investments      Investments       `json:"investments"`
	InvestmentCount  int               `json:"investment_count"`
	Links            map[string]string `json:"links"`
	CurrentFundSize  *int64            `json:"current_fund_size"`
	Roles            []string          `json:"roles"`
	CoInvestors      []string          `json:"co_investors"`
	ScoutsAndAngels  []string          `json:"scouts_angels"`
	ExtractionMethod ExtractionMethod  `json:"extraction_method"`
	SourceFile       string            `json:"source_file"`

	// Provenance maps a record field (by its json name) to the source that filled it.
	Provenance map[string]ExtractionMethod `json:"-"`
}

// MarshalIndent renders the record the way the batch output stores it.
func (r Record) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(r)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
