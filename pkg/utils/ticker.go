package utils

import (
	"strings"

	"github.com/samber/lo"
)

// NormalizeTicker normalizes a user-input ticker: uppercase, trimmed,
// "$" prefix removed. The symbol itself is never rewritten, so a retired
// listing such as FB is requested as given.
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))

	// Remove $ prefix if present (common in chat)
	return strings.TrimPrefix(ticker, "$")
}

// ParseTickers splits comma- or space-separated input into normalized,
// de-duplicated tickers, keeping first-seen order.
func ParseTickers(inputs ...string) []string {
	var out []string
	for _, in := range inputs {
		fields := strings.FieldsFunc(in, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, f := range fields {
			if t := NormalizeTicker(f); t != "" {
				out = append(out, t)
			}
		}
	}
	return lo.Uniq(out)
}
