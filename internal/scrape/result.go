package scrape

import (
	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// CatalogResult is the outcome of one instant-catalog scrape. A failed
// fetch or extraction leaves Games empty with Err recording the cause;
// the pipeline proceeds with whatever the other sources returned.
type CatalogResult struct {
	Games []game.Game
	Err   error
}

// Degraded reports whether this result stands in for a failed scrape.
func (r CatalogResult) Degraded() bool { return r.Err != nil }

// LedgerResult is the outcome of one prize-ledger scrape. On failure
// the Ledger is nil, which merges as "no entries".
type LedgerResult struct {
	Ledger game.Ledger
	Err    error
}

// Degraded reports whether this result stands in for a failed scrape.
func (r LedgerResult) Degraded() bool { return r.Err != nil }

// DrawResult always carries one game per configured draw game; a failed
// jackpot scrape only costs that game its live figure. Failures counts
// the games that fell back to their default ladder.
type DrawResult struct {
	Games    []game.Game
	Failures int
}
