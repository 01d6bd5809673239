package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/notacoder13/nc-lottery-backend/internal/parse"
)

const (
	// CatalogURL is the instant-ticket catalog listing.
	CatalogURL = "https://nclottery.com/scratch-off"

	// LedgerURL is the prizes-remaining table for instant tickets.
	LedgerURL = "https://nclottery.com/scratch-off-prizes-remaining"

	// PowerballURL and MegaMillionsURL are the multi-state game home
	// pages carrying the advertised jackpot.
	PowerballURL    = "https://www.powerball.com/"
	MegaMillionsURL = "https://www.megamillions.com/"

	// DefaultInstantOdds is assigned when a catalog entry publishes no
	// parseable overall odds.
	DefaultInstantOdds = "1 in 4.0"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// firstText returns the trimmed text of the first selector that matches
// a node with non-empty text.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := strings.TrimSpace(sel.Find(s).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// gameNumber extracts the numeric game identifier out of a label like
// "Game No. 856".
func gameNumber(text string) string {
	return digitsPattern.FindString(text)
}

// jackpotAmount parses an advertised jackpot string like "$150 Million"
// or "$1.2 Billion" into dollars.
func jackpotAmount(text string) float64 {
	amount := parse.PrizeAmount(text)
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "billion"):
		amount *= 1e9
	case strings.Contains(lower, "million"):
		amount *= 1e6
	}
	return amount
}
