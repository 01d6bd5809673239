// Package refresh runs the aggregation pipeline and schedules it on a
// fixed interval with coalesced on-demand triggers.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/ev"
	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/merge"
	"github.com/notacoder13/nc-lottery-backend/internal/metrics"
	"github.com/notacoder13/nc-lottery-backend/internal/notifier"
	"github.com/notacoder13/nc-lottery-backend/internal/scrape"
	"github.com/notacoder13/nc-lottery-backend/internal/store"
)

// CatalogSource yields the instant-game catalog.
type CatalogSource interface {
	Fetch(ctx context.Context) scrape.CatalogResult
}

// LedgerSource yields the prize-remaining ledger.
type LedgerSource interface {
	Fetch(ctx context.Context) scrape.LedgerResult
}

// DrawSource yields the multi-state draw games.
type DrawSource interface {
	Fetch(ctx context.Context) scrape.DrawResult
}

// Pipeline runs one full aggregation cycle: scrape all sources in
// parallel, merge the ledger into the catalog, compute expected values,
// and install the result. Individual source failures degrade to empty
// results and never fail the run; only a snapshot persistence failure
// surfaces as an error, and even then the in-memory snapshot is already
// installed.
type Pipeline struct {
	catalog CatalogSource
	ledger  LedgerSource
	draws   DrawSource
	store   *store.Store
	notify  notifier.Notifier
	logger  *zap.Logger
}

// NewPipeline assembles a pipeline. notify may be nil to disable
// announcements.
func NewPipeline(catalog CatalogSource, ledger LedgerSource, draws DrawSource, st *store.Store, notify notifier.Notifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		catalog: catalog,
		ledger:  ledger,
		draws:   draws,
		store:   st,
		notify:  notify,
		logger:  logger,
	}
}

// Run executes one cycle and returns the snapshot it installed.
func (p *Pipeline) Run(ctx context.Context) (game.Snapshot, error) {
	start := time.Now()

	var (
		wg         sync.WaitGroup
		catalogRes scrape.CatalogResult
		ledgerRes  scrape.LedgerResult
		drawRes    scrape.DrawResult
	)

	wg.Add(3)
	go func() { defer wg.Done(); catalogRes = p.catalog.Fetch(ctx) }()
	go func() { defer wg.Done(); ledgerRes = p.ledger.Fetch(ctx) }()
	go func() { defer wg.Done(); drawRes = p.draws.Fetch(ctx) }()
	wg.Wait()

	instant := merge.Merge(catalogRes.Games, ledgerRes.Ledger)
	for i := range instant {
		instant[i].ExpectedValue = ev.Compute(instant[i])
	}
	draws := drawRes.Games
	for i := range draws {
		draws[i].ExpectedValue = ev.Compute(draws[i])
	}

	snap := game.Snapshot{
		InstantGames: instant,
		DrawGames:    draws,
		LastUpdated:  time.Now().UTC(),
	}

	previous := p.store.Current()
	err := p.store.Replace(ctx, snap)

	outcome := "ok"
	if err != nil {
		outcome = "persist_failed"
		p.logger.Warn("snapshot persist failed, serving from memory", zap.Error(err))
	}
	metrics.RefreshRuns.WithLabelValues(outcome).Inc()
	metrics.SnapshotGames.WithLabelValues(string(game.KindInstant)).Set(float64(len(instant)))
	metrics.SnapshotGames.WithLabelValues(string(game.KindDraw)).Set(float64(len(draws)))

	p.logger.Info("refresh cycle complete",
		zap.Int("instant_games", len(instant)),
		zap.Int("draw_games", len(draws)),
		zap.Bool("catalog_degraded", catalogRes.Degraded()),
		zap.Bool("ledger_degraded", ledgerRes.Degraded()),
		zap.Int("draw_failures", drawRes.Failures),
		zap.Duration("duration", time.Since(start)),
	)

	p.announce(previous, snap)

	return snap, err
}

// announce posts new arrivals, skipping the very first populated
// snapshot so a cold start does not announce the entire catalog.
func (p *Pipeline) announce(previous, next game.Snapshot) {
	if p.notify == nil || previous.Total() == 0 {
		return
	}

	arrivals := game.NewArrivals(&previous, &next)
	if len(arrivals) == 0 {
		return
	}

	if err := p.notify.Notify(arrivals); err != nil {
		p.logger.Warn("announcing new games failed", zap.Error(err))
	}
}
