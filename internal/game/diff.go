package game

import "sort"

// NewArrivals returns the games present in next but not in previous,
// compared by stable key. Against the empty pre-first-run snapshot every
// game is an arrival, so callers should only diff once a previous run
// exists.
func NewArrivals(previous, next *Snapshot) []Game {
	seen := make(map[string]bool)
	for _, g := range previous.Games() {
		seen[g.Key()] = true
	}

	arrivals := make([]Game, 0)
	for _, g := range next.Games() {
		if !g.Valid() || seen[g.Key()] {
			continue
		}
		arrivals = append(arrivals, g)
	}

	// Sort for consistent notification order.
	sort.Slice(arrivals, func(i, j int) bool {
		return arrivals[i].Key() < arrivals[j].Key()
	})

	return arrivals
}
