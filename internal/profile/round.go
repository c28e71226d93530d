package profile

import (
	"regexp"
	"strings"
)

// RoundDescriptor is the decomposition of a single funding round fragment.
type RoundDescriptor struct {
	Stage  string
	Date   *string
	Amount *string
}

var (
	// Pre-Seed is listed first so it is not shadowed by the Seed it contains.
	roundStageRegex  = regexp.MustCompile(`Pre-Seed|Seed|Series [A-Z]|Angel`)
	roundDateRegex   = regexp.MustCompile(`[A-Z][a-z]{2}\s+\d{4}`)
	roundAmountRegex = regexp.MustCompile(`\$\d+(?:\.\d+)?[KMB]?`)
)

func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// roundTokens applies the separators in order: bullet, then " - ", then a
// pattern search for stage, date and amount.
func roundTokens(fragment string) []string {
	if strings.Contains(fragment, "•") {
		return splitTrimmed(fragment, "•")
	}

	parts := splitTrimmed(fragment, " - ")
	if len(parts) > 1 {
		return parts
	}

	var found []string
	for _, pattern := range []*regexp.Regexp{roundStageRegex, roundDateRegex, roundAmountRegex} {
		if match := pattern.FindString(fragment); match != "" {
			found = append(found, match)
		}
	}
	return found
}

// ParseRound decomposes a fragment like "Series A • Jan 2020 • $5M". With three or
// more tokens they are read as stage, date, amount, two as stage and date, one as
// stage only. If nothing is recognized the whole fragment becomes the stage.
func ParseRound(fragment string) RoundDescriptor {
	fragment = strings.TrimSpace(fragment)
	tokens := roundTokens(fragment)

	switch {
	case len(tokens) >= 3:
		return RoundDescriptor{Stage: tokens[0], Date: optional(tokens[1]), Amount: optional(tokens[2])}
	case len(tokens) == 2:
		return RoundDescriptor{Stage: tokens[0], Date: optional(tokens[1])}
	case len(tokens) == 1 && tokens[0] != "":
		return RoundDescriptor{Stage: tokens[0]}
	}
	return RoundDescriptor{Stage: fragment}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
