package refresh

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/scrape"
	"github.com/notacoder13/nc-lottery-backend/internal/store"
)

type stubCatalog struct{ res scrape.CatalogResult }

func (s stubCatalog) Fetch(ctx context.Context) scrape.CatalogResult { return s.res }

type stubLedger struct{ res scrape.LedgerResult }

func (s stubLedger) Fetch(ctx context.Context) scrape.LedgerResult { return s.res }

type stubDraws struct{ res scrape.DrawResult }

func (s stubDraws) Fetch(ctx context.Context) scrape.DrawResult { return s.res }

func testStore(t *testing.T) *store.Store {
	t.Helper()
	blob, err := store.NewFileBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating blob store: %v", err)
	}
	return store.New(blob, zap.NewNop())
}

func catalogGame() game.Game {
	return game.Game{
		ID:            "instant-1",
		Name:          "Carolina Millions",
		Kind:          game.KindInstant,
		Price:         5,
		OverallOdds:   "1 in 4.0",
		GameNumber:    "1234",
		ExpectedValue: game.DefaultExpectedValue,
	}
}

func drawGame() game.Game {
	return game.Game{
		ID:          "powerball",
		Name:        "Powerball",
		Kind:        game.KindDraw,
		Price:       2,
		OverallOdds: "1 in 24.87",
		TopPrize:    20_000_000,
		PrizeTiers:  []game.PrizeTier{{Amount: 20_000_000, Remaining: 1}},
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	ledger := game.Ledger{}
	ledger.Add("1234", "Carolina Millions", game.PrizeTier{Amount: 500000, Remaining: 1})
	ledger.Add("1234", "Carolina Millions", game.PrizeTier{Amount: 50, Remaining: 1000})

	st := testStore(t)
	p := NewPipeline(
		stubCatalog{scrape.CatalogResult{Games: []game.Game{catalogGame()}}},
		stubLedger{scrape.LedgerResult{Ledger: ledger}},
		stubDraws{scrape.DrawResult{Games: []game.Game{drawGame()}}},
		st, nil, zap.NewNop(),
	)

	snap, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(snap.InstantGames) != 1 || len(snap.DrawGames) != 1 {
		t.Fatalf("unexpected snapshot shape: %d instant, %d draw",
			len(snap.InstantGames), len(snap.DrawGames))
	}

	g := snap.InstantGames[0]
	if g.TopPrize != 500000 || g.TopPrizeRemaining != 1 {
		t.Errorf("expected merged top prize 500000 x1, got %v x%d", g.TopPrize, g.TopPrizeRemaining)
	}

	// 1,001 winners at 1-in-4 odds imply 3,003 synthetic losers.
	expectedEV := (500000.0 + 50000.0) / (1 + 1000 + 1001*3) / 5
	if math.Abs(g.ExpectedValue-expectedEV) > 1e-9 {
		t.Errorf("expected EV %v, got %v", expectedEV, g.ExpectedValue)
	}

	if snap.LastUpdated.IsZero() {
		t.Error("expected snapshot timestamp to be set")
	}
	cur := st.Current()
	if cur.Total() != 2 {
		t.Error("expected snapshot installed in store")
	}
}

func TestPipelinePartialFailure(t *testing.T) {
	// The ledger degrading to empty must not reject the snapshot.
	st := testStore(t)
	p := NewPipeline(
		stubCatalog{scrape.CatalogResult{Games: []game.Game{catalogGame()}}},
		stubLedger{scrape.LedgerResult{Err: errors.New("upstream down")}},
		stubDraws{scrape.DrawResult{Games: []game.Game{drawGame()}}},
		st, nil, zap.NewNop(),
	)

	snap, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(snap.InstantGames) != 1 {
		t.Fatal("expected unmerged instant game to survive ledger outage")
	}
	if len(snap.InstantGames[0].PrizeTiers) != 0 {
		t.Error("expected instant game to stay unmerged")
	}
	if snap.InstantGames[0].ExpectedValue != game.DefaultExpectedValue {
		t.Error("expected neutral EV without prize tiers")
	}
	if len(snap.DrawGames) != 1 {
		t.Error("expected draw games unaffected by ledger outage")
	}
}

// recordingNotifier captures announced games.
type recordingNotifier struct {
	mu    sync.Mutex
	games []game.Game
}

func (n *recordingNotifier) Notify(games []game.Game) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.games = append(n.games, games...)
	return nil
}

func TestPipelineAnnouncesArrivalsAfterFirstRun(t *testing.T) {
	n := &recordingNotifier{}
	st := testStore(t)

	first := NewPipeline(
		stubCatalog{scrape.CatalogResult{Games: []game.Game{catalogGame()}}},
		stubLedger{scrape.LedgerResult{}},
		stubDraws{scrape.DrawResult{Games: []game.Game{drawGame()}}},
		st, n, zap.NewNop(),
	)
	if _, err := first.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if len(n.games) != 0 {
		t.Fatalf("cold start must not announce, got %d announcements", len(n.games))
	}

	newcomer := catalogGame()
	newcomer.ID = "instant-2"
	newcomer.Name = "Lucky 7s"
	newcomer.GameNumber = "5678"

	second := NewPipeline(
		stubCatalog{scrape.CatalogResult{Games: []game.Game{catalogGame(), newcomer}}},
		stubLedger{scrape.LedgerResult{}},
		stubDraws{scrape.DrawResult{Games: []game.Game{drawGame()}}},
		st, n, zap.NewNop(),
	)
	if _, err := second.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(n.games) != 1 || n.games[0].Name != "Lucky 7s" {
		t.Errorf("expected exactly the newcomer announced, got %+v", n.games)
	}
}
