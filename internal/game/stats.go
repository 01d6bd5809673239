package game

import (
	"github.com/notacoder13/nc-lottery-backend/internal/parse"
)

// Stats holds the aggregate reductions over one snapshot. A nil field
// means no game in the snapshot qualified for that reduction.
type Stats struct {
	BestOdds          *Game `json:"best_odds,omitempty"`
	LargestTopPrize   *Game `json:"largest_top_prize,omitempty"`
	BestExpectedValue *Game `json:"best_expected_value,omitempty"`
}

// ComputeStats scans every game in the snapshot once. Ties keep the
// first game encountered, instant games before draw games.
func ComputeStats(s *Snapshot) Stats {
	var st Stats
	var bestN float64

	all := s.Games()
	for i := range all {
		g := &all[i]
		if !g.Valid() {
			continue
		}

		if n, ok := parse.OddsDenominator(g.OverallOdds); ok {
			if st.BestOdds == nil || n < bestN {
				st.BestOdds = g
				bestN = n
			}
		}

		if st.LargestTopPrize == nil || g.TopPrize > st.LargestTopPrize.TopPrize {
			st.LargestTopPrize = g
		}

		if st.BestExpectedValue == nil || g.ExpectedValue > st.BestExpectedValue.ExpectedValue {
			st.BestExpectedValue = g
		}
	}

	return st
}
