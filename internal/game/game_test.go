package game

import (
	"testing"
	"time"
)

func TestKeyPrefersGameNumber(t *testing.T) {
	g := Game{Kind: KindInstant, Name: "Carolina Millions", GameNumber: "856"}
	if got := g.Key(); got != "instant|856" {
		t.Errorf("Key() = %q, want %q", got, "instant|856")
	}

	g.GameNumber = ""
	if got := g.Key(); got != "instant|Carolina Millions" {
		t.Errorf("Key() without game number = %q, want %q", got, "instant|Carolina Millions")
	}
}

func TestKeySeparatesKinds(t *testing.T) {
	instant := Game{Kind: KindInstant, Name: "Powerball", GameNumber: "100"}
	draw := Game{Kind: KindDraw, Name: "Powerball", GameNumber: "100"}
	if instant.Key() == draw.Key() {
		t.Errorf("instant and draw games with the same number share key %q", instant.Key())
	}
}

func TestSnapshotGamesOrdering(t *testing.T) {
	s := Snapshot{
		InstantGames: []Game{{Name: "A", Kind: KindInstant}, {Name: "B", Kind: KindInstant}},
		DrawGames:    []Game{{Name: "C", Kind: KindDraw}},
	}

	all := s.Games()
	if len(all) != 3 {
		t.Fatalf("Games() returned %d games, want 3", len(all))
	}
	if all[0].Name != "A" || all[2].Name != "C" {
		t.Errorf("Games() order = %s, %s, %s; want instant games first", all[0].Name, all[1].Name, all[2].Name)
	}
	if s.Total() != 3 {
		t.Errorf("Total() = %d, want 3", s.Total())
	}
}

func TestSnapshotAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var empty Snapshot
	if age := empty.Age(now); age != 0 {
		t.Errorf("empty snapshot Age() = %v, want 0", age)
	}

	s := Snapshot{LastUpdated: now.Add(-10 * time.Minute)}
	if age := s.Age(now); age != 10*time.Minute {
		t.Errorf("Age() = %v, want 10m", age)
	}
}

func TestLedgerAddAccumulates(t *testing.T) {
	l := make(Ledger)
	l.Add("856", "Carolina Millions", PrizeTier{Amount: 4_000_000, Remaining: 2})
	l.Add("856", "Carolina Millions", PrizeTier{Amount: 100_000, Remaining: 9})
	l.Add("812", "Lucky 7s", PrizeTier{Amount: 777_777, Remaining: 1})

	if len(l) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(l))
	}

	entry := l["856"]
	if entry == nil {
		t.Fatal("no entry for game 856")
	}
	if len(entry.Tiers) != 2 {
		t.Errorf("game 856 has %d tiers, want 2", len(entry.Tiers))
	}
	if entry.Name != "Carolina Millions" {
		t.Errorf("game 856 name = %q", entry.Name)
	}
}

func TestLedgerAddFillsMissingName(t *testing.T) {
	l := make(Ledger)
	l.Add("790", "", PrizeTier{Amount: 500, Remaining: 80})
	l.Add("790", "Cash Blast", PrizeTier{Amount: 50, Remaining: 900})

	if got := l["790"].Name; got != "Cash Blast" {
		t.Errorf("name = %q, want %q", got, "Cash Blast")
	}
}

func TestComputeStats(t *testing.T) {
	s := Snapshot{
		InstantGames: []Game{
			{Name: "Long Shot", Kind: KindInstant, OverallOdds: "1 in 4.5", TopPrize: 1_000_000, ExpectedValue: 0.42},
			{Name: "Good Odds", Kind: KindInstant, OverallOdds: "1 in 2.9", TopPrize: 500, ExpectedValue: 0.61},
			{Name: "No Odds", Kind: KindInstant, OverallOdds: "", TopPrize: 100, ExpectedValue: 0.5},
		},
		DrawGames: []Game{
			{Name: "Big Jackpot", Kind: KindDraw, OverallOdds: "1 in 24.87", TopPrize: 150_000_000, ExpectedValue: 0.3},
		},
	}

	st := ComputeStats(&s)

	if st.BestOdds == nil || st.BestOdds.Name != "Good Odds" {
		t.Errorf("BestOdds = %+v, want Good Odds", st.BestOdds)
	}
	if st.LargestTopPrize == nil || st.LargestTopPrize.Name != "Big Jackpot" {
		t.Errorf("LargestTopPrize = %+v, want Big Jackpot", st.LargestTopPrize)
	}
	if st.BestExpectedValue == nil || st.BestExpectedValue.Name != "Good Odds" {
		t.Errorf("BestExpectedValue = %+v, want Good Odds", st.BestExpectedValue)
	}
}

func TestComputeStatsTiesKeepFirst(t *testing.T) {
	s := Snapshot{
		InstantGames: []Game{
			{Name: "First", Kind: KindInstant, OverallOdds: "1 in 4.0", TopPrize: 1000, ExpectedValue: 0.5},
			{Name: "Second", Kind: KindInstant, OverallOdds: "1 in 4.0", TopPrize: 1000, ExpectedValue: 0.5},
		},
	}

	st := ComputeStats(&s)
	for field, g := range map[string]*Game{
		"BestOdds":          st.BestOdds,
		"LargestTopPrize":   st.LargestTopPrize,
		"BestExpectedValue": st.BestExpectedValue,
	} {
		if g == nil || g.Name != "First" {
			t.Errorf("%s = %+v, want First", field, g)
		}
	}
}

func TestComputeStatsEmptySnapshot(t *testing.T) {
	var s Snapshot
	st := ComputeStats(&s)
	if st.BestOdds != nil || st.LargestTopPrize != nil || st.BestExpectedValue != nil {
		t.Errorf("stats over empty snapshot = %+v, want all nil", st)
	}
}

func TestNewArrivals(t *testing.T) {
	previous := Snapshot{
		InstantGames: []Game{
			{Name: "Old Game", Kind: KindInstant, GameNumber: "800"},
		},
	}
	next := Snapshot{
		InstantGames: []Game{
			{Name: "Old Game", Kind: KindInstant, GameNumber: "800"},
			{Name: "Brand New", Kind: KindInstant, GameNumber: "900"},
			{Name: "Also New", Kind: KindInstant, GameNumber: "850"},
		},
		DrawGames: []Game{
			{Name: "Powerball", Kind: KindDraw, GameNumber: ""},
		},
	}

	arrivals := NewArrivals(&previous, &next)
	if len(arrivals) != 3 {
		t.Fatalf("got %d arrivals, want 3", len(arrivals))
	}
	// Sorted by key: draw|Powerball < instant|850 < instant|900.
	if arrivals[0].Name != "Powerball" || arrivals[1].Name != "Also New" || arrivals[2].Name != "Brand New" {
		t.Errorf("arrival order = %s, %s, %s", arrivals[0].Name, arrivals[1].Name, arrivals[2].Name)
	}
}

func TestNewArrivalsRenumberedIDStillMatches(t *testing.T) {
	previous := Snapshot{
		InstantGames: []Game{{ID: "instant-1", Name: "Steady", Kind: KindInstant, GameNumber: "700"}},
	}
	next := Snapshot{
		InstantGames: []Game{{ID: "instant-3", Name: "Steady", Kind: KindInstant, GameNumber: "700"}},
	}

	if arrivals := NewArrivals(&previous, &next); len(arrivals) != 0 {
		t.Errorf("positional ID shift produced %d arrivals, want 0", len(arrivals))
	}
}
