package scrape

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/metrics"
)

// DrawConfig describes one multi-state draw game. The game is always
// emitted with its fixed ladder; only the jackpot figure is live.
type DrawConfig struct {
	ID          string
	Name        string
	URL         string
	Price       float64
	OverallOdds string

	// Jackpot is the fallback top-tier amount used when the live
	// jackpot cannot be scraped.
	Jackpot float64

	// LowerTiers is the fixed non-jackpot ladder with nominal per-draw
	// winner counts.
	LowerTiers []game.PrizeTier
}

// DefaultDrawGames returns the multi-state games tracked out of the
// box: Powerball and Mega Millions.
func DefaultDrawGames() []DrawConfig {
	return []DrawConfig{
		{
			ID:          "powerball",
			Name:        "Powerball",
			URL:         PowerballURL,
			Price:       2,
			OverallOdds: "1 in 24.87",
			Jackpot:     20_000_000,
			LowerTiers: []game.PrizeTier{
				{Amount: 1_000_000, Remaining: 2},
				{Amount: 50_000, Remaining: 12},
				{Amount: 100, Remaining: 600},
				{Amount: 7, Remaining: 24_000},
				{Amount: 4, Remaining: 350_000},
			},
		},
		{
			ID:          "megamillions",
			Name:        "Mega Millions",
			URL:         MegaMillionsURL,
			Price:       2,
			OverallOdds: "1 in 24",
			Jackpot:     20_000_000,
			LowerTiers: []game.PrizeTier{
				{Amount: 1_000_000, Remaining: 1},
				{Amount: 10_000, Remaining: 18},
				{Amount: 500, Remaining: 700},
				{Amount: 10, Remaining: 30_000},
				{Amount: 2, Remaining: 400_000},
			},
		},
	}
}

// DrawGames scrapes the configured multi-state draw games. Each game is
// fetched independently so one site being down never suppresses the
// others.
type DrawGames struct {
	fetcher *fetch.Fetcher
	configs []DrawConfig
	logger  *zap.Logger
}

// NewDrawGames creates a draw-game adapter. A nil configs slice selects
// DefaultDrawGames.
func NewDrawGames(f *fetch.Fetcher, configs []DrawConfig, logger *zap.Logger) *DrawGames {
	if len(configs) == 0 {
		configs = DefaultDrawGames()
	}
	return &DrawGames{fetcher: f, configs: configs, logger: logger}
}

// Fetch returns one game per configured draw game, scraping live
// jackpots concurrently. Games whose scrape fails keep their default
// ladder.
func (d *DrawGames) Fetch(ctx context.Context) DrawResult {
	timer := prometheus.NewTimer(metrics.ScrapeDuration.WithLabelValues("draw"))
	defer timer.ObserveDuration()

	games := make([]game.Game, len(d.configs))
	failed := make([]bool, len(d.configs))

	var wg sync.WaitGroup
	for i, cfg := range d.configs {
		wg.Add(1)
		go func(i int, cfg DrawConfig) {
			defer wg.Done()
			games[i], failed[i] = d.fetchOne(ctx, cfg)
		}(i, cfg)
	}
	wg.Wait()

	res := DrawResult{Games: games}
	for _, f := range failed {
		if f {
			res.Failures++
		}
	}
	return res
}

// fetchOne builds the game for cfg, overriding the default jackpot with
// the scraped figure when the scrape succeeds.
func (d *DrawGames) fetchOne(ctx context.Context, cfg DrawConfig) (game.Game, bool) {
	jackpot := cfg.Jackpot
	failed := false

	live, err := d.scrapeJackpot(ctx, cfg.URL)
	if err != nil {
		d.logger.Warn("draw jackpot scrape failed, keeping default ladder",
			zap.String("game", cfg.ID),
			zap.Error(err),
		)
		metrics.AdapterDegradations.WithLabelValues("draw:" + cfg.ID).Inc()
		failed = true
	} else {
		jackpot = live
	}

	tiers := make([]game.PrizeTier, 0, len(cfg.LowerTiers)+1)
	tiers = append(tiers, game.PrizeTier{Amount: jackpot, Remaining: 1})
	tiers = append(tiers, cfg.LowerTiers...)

	return game.Game{
		ID:                cfg.ID,
		Name:              cfg.Name,
		Kind:              game.KindDraw,
		Price:             cfg.Price,
		OverallOdds:       cfg.OverallOdds,
		TopPrize:          jackpot,
		TopPrizeRemaining: 1,
		ExpectedValue:     game.DefaultExpectedValue,
		PrizeTiers:        tiers,
		LastUpdated:       time.Now().UTC(),
	}, failed
}

// scrapeJackpot pulls the advertised jackpot off the game's home page.
func (d *DrawGames) scrapeJackpot(ctx context.Context, url string) (float64, error) {
	doc, err := d.fetcher.Document(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("fetching jackpot page: %w", err)
	}

	text := firstText(doc.Selection, ".jackpot-amount", ".game-jackpot", "#jackpot", "h1", "h2")
	amount := jackpotAmount(text)
	if amount <= 0 {
		return 0, errors.New("no jackpot figure found")
	}
	return amount, nil
}
