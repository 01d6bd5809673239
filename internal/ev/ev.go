// Package ev derives the expected-value ratio for a game from its
// remaining-prize distribution and published overall odds.
package ev

import (
	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/parse"
)

// Compute returns the expected return per dollar for g: the sum of
// (amount x remaining) over all tiers, divided by an estimated total
// ticket population, divided by the ticket price. 1.0 means a ticket's
// expected return equals its price.
//
// The ticket population is estimated from the known winning-ticket
// count: when the overall odds parse as "1 in N", the remaining winners
// imply N-1 losing tickets each. This is an estimator, not an exact
// count, and gets noisy when remaining-prize data is sparse.
//
// Games with no prize tiers or a non-positive price keep the neutral
// default of 0.5.
func Compute(g game.Game) float64 {
	if len(g.PrizeTiers) == 0 || g.Price <= 0 {
		return game.DefaultExpectedValue
	}

	var totalValue, totalTickets float64
	for _, t := range g.PrizeTiers {
		totalValue += t.Amount * float64(t.Remaining)
		totalTickets += float64(t.Remaining)
	}

	if n, ok := parse.OddsDenominator(g.OverallOdds); ok {
		if losers := totalTickets * (n - 1); losers > 0 {
			totalTickets += losers
		}
	}

	if totalTickets <= 0 {
		return game.DefaultExpectedValue
	}

	return (totalValue / totalTickets) / g.Price
}
