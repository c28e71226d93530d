package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var amountSuffixes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// ParseAmount converts currency text like "$1.5M", "$500K" or "250,000" into an
// integer amount, the fractional part is truncated.
func ParseAmount(text string) (int64, error) {
	cleaned := strings.ReplaceAll(text, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnparseableAmount)
	}

	multiplier := 1.0
	last := cleaned[len(cleaned)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if m, ok := amountSuffixes[last]; ok {
		multiplier = m
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-1])
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAmount, text)
	}
	return fromFloat(value * multiplier)
}

func fromFloat(value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v out of range", ErrUnparseableAmount, value)
	}
	return int64(value), nil
}

// NormalizeAmount accepts either amount text or a number (as decoded from
// the cache graph) and returns nil when it cannot be read as an amount.
func NormalizeAmount(value any) *int64 {
	var (
		out int64
		err error
	)
	switch v := value.(type) {
	case string:
		out, err = ParseAmount(v)
	case float64:
		out, err = fromFloat(v)
	case int:
		out = int64(v)
	case int64:
		out = v
	case json.Number:
		var f float64
		f, err = v.Float64()
		if err == nil {
			out, err = fromFloat(f)
		}
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &out
}
