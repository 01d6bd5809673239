package game

import "time"

// Kind distinguishes scratch-off tickets from drawn jackpot games.
type Kind string

const (
	KindInstant Kind = "instant"
	KindDraw    Kind = "draw"
)

// DefaultExpectedValue is the neutral return ratio a game carries until
// the calculator has real prize data to work with.
const DefaultExpectedValue = 0.5

// PrizeTier is one payout level still available to be won.
type PrizeTier struct {
	Amount    float64 `json:"amount"`
	Remaining int     `json:"remaining"`
}

// Game represents a single lottery game within a snapshot.
type Game struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Kind              Kind        `json:"kind"`
	Price             float64     `json:"price"`
	OverallOdds       string      `json:"overall_odds"`
	TopPrize          float64     `json:"top_prize"`
	TopPrizeRemaining int         `json:"top_prize_remaining"`
	ExpectedValue     float64     `json:"expected_value"`
	PrizeTiers        []PrizeTier `json:"prize_tiers,omitempty"`
	GameNumber        string      `json:"game_number,omitempty"`
	LastUpdated       time.Time   `json:"last_updated"`
}

// Valid reports whether the record carries enough identity to be served.
func (g *Game) Valid() bool {
	return g.Name != ""
}

// Key returns a stable identity for cross-snapshot comparison. Catalog
// IDs are positional and shift as games are added or retired, so the
// game number is preferred when it exists.
func (g *Game) Key() string {
	if g.GameNumber != "" {
		return string(g.Kind) + "|" + g.GameNumber
	}
	return string(g.Kind) + "|" + g.Name
}

// Snapshot is the complete, internally consistent result of one full
// pipeline run. It is only ever replaced as a whole.
type Snapshot struct {
	InstantGames []Game    `json:"instant_games"`
	DrawGames    []Game    `json:"draw_games"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Games returns every game in the snapshot, instant games first.
func (s *Snapshot) Games() []Game {
	all := make([]Game, 0, len(s.InstantGames)+len(s.DrawGames))
	all = append(all, s.InstantGames...)
	all = append(all, s.DrawGames...)
	return all
}

// Total returns the number of games across both categories.
func (s *Snapshot) Total() int {
	return len(s.InstantGames) + len(s.DrawGames)
}

// Age returns how long ago the snapshot was produced, or zero for the
// empty snapshot that exists before the first pipeline run.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s.LastUpdated.IsZero() {
		return 0
	}
	return now.Sub(s.LastUpdated)
}
