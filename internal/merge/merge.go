// Package merge joins the instant-game catalog with the prize-remaining
// ledger.
package merge

import (
	"sort"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// Merge enriches catalog games with their remaining-prize ledger
// entries, matched by game number. A matched game gets the ledger's
// tiers sorted descending by amount, with the top prize taken from the
// largest tier. Games with no match, or no game number, pass through
// untouched. The operation is idempotent: merging the same ledger twice
// yields the same result as merging once.
func Merge(games []game.Game, ledger game.Ledger) []game.Game {
	merged := make([]game.Game, len(games))

	for i, g := range games {
		if g.GameNumber != "" {
			if entry, ok := ledger[g.GameNumber]; ok {
				apply(&g, entry)
			}
		}
		merged[i] = g
	}

	return merged
}

func apply(g *game.Game, entry *game.LedgerEntry) {
	tiers := make([]game.PrizeTier, len(entry.Tiers))
	copy(tiers, entry.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Amount > tiers[j].Amount
	})

	g.PrizeTiers = tiers
	if len(tiers) > 0 {
		g.TopPrize = tiers[0].Amount
		g.TopPrizeRemaining = tiers[0].Remaining
	} else {
		g.TopPrize = 0
		g.TopPrizeRemaining = 0
	}
}
