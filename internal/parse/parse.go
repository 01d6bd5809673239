// Package parse turns raw text fragments scraped from upstream pages
// into typed values. All parsers degrade to a conservative default on
// unparseable input rather than returning an error; a missing field on
// a lottery page is routine, not exceptional.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// currencyPattern intentionally has no thousands-separator support:
	// ticket prices are small round numbers like "$5" and the upstream
	// price column never carries separators. Prize amounts do, which is
	// why PrizeAmount strips commas before matching.
	currencyPattern = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)`)

	oddsPattern = regexp.MustCompile(`(?i)1\s+in\s+([\d,]+(?:\.\d+)?)`)

	countPattern = regexp.MustCompile(`\d+`)
)

// Currency extracts the first dollar amount from text. The leading "$"
// is optional. Returns 0 when no amount is present.
func Currency(text string) float64 {
	m := currencyPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// PrizeAmount parses a prize amount, tolerating thousands separators
// ("$1,000,000"). See the note on currencyPattern for why this differs
// from Currency.
func PrizeAmount(text string) float64 {
	return Currency(strings.ReplaceAll(text, ",", ""))
}

// OddsRatio normalizes a published overall-odds string. A recognized
// "1 in N" form (any case, thousands separators and a fractional part
// allowed) is re-rendered as "1 in N" with separators stripped. Anything
// else passes through unmodified, so an empty input yields the empty
// string, which callers treat as absent.
func OddsRatio(text string) string {
	if m := oddsPattern.FindStringSubmatch(text); m != nil {
		return "1 in " + strings.ReplaceAll(m[1], ",", "")
	}
	return text
}

// OddsDenominator pulls the N out of a "1 in N" odds string. ok is
// false when the string holds no recognizable ratio or N is not a
// positive number.
func OddsDenominator(odds string) (float64, bool) {
	m := oddsPattern.FindStringSubmatch(odds)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Count parses a remaining-prize count. Thousands separators are
// stripped; absent or non-numeric text counts as zero.
func Count(text string) int {
	m := countPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
