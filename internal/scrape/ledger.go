package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/metrics"
	"github.com/notacoder13/nc-lottery-backend/internal/parse"
)

// PrizeLedger scrapes the prizes-remaining table for instant tickets.
type PrizeLedger struct {
	fetcher *fetch.Fetcher
	url     string
	logger  *zap.Logger
}

// NewPrizeLedger creates a ledger adapter. An empty url selects the
// default prizes-remaining page.
func NewPrizeLedger(f *fetch.Fetcher, url string, logger *zap.Logger) *PrizeLedger {
	if url == "" {
		url = LedgerURL
	}
	return &PrizeLedger{fetcher: f, url: url, logger: logger}
}

// Fetch scrapes the ledger and returns remaining-prize entries keyed by
// game number. Rows sharing a game number accumulate into one entry.
// Any failure degrades to an empty result.
func (p *PrizeLedger) Fetch(ctx context.Context) LedgerResult {
	timer := prometheus.NewTimer(metrics.ScrapeDuration.WithLabelValues("ledger"))
	defer timer.ObserveDuration()

	doc, err := p.fetcher.Document(ctx, p.url)
	if err != nil {
		return p.degrade(fmt.Errorf("fetching prize ledger: %w", err))
	}

	ledger := p.extractRows(doc, "table.prizes-remaining tbody tr, table#prizes-remaining tbody tr")
	if len(ledger) == 0 {
		ledger = p.extractRows(doc, "table tr")
	}
	if len(ledger) == 0 {
		return p.degrade(errors.New("no ledger rows matched any extraction strategy"))
	}

	return LedgerResult{Ledger: ledger}
}

func (p *PrizeLedger) degrade(err error) LedgerResult {
	p.logger.Warn("prize ledger degraded to empty result", zap.Error(err))
	metrics.AdapterDegradations.WithLabelValues("ledger").Inc()
	return LedgerResult{Err: err}
}

// extractRows scans rows of (game number, game name, prize amount,
// remaining count). Prize amounts go through the separator-stripping
// parser; the upstream table writes "$1,000,000".
func (p *PrizeLedger) extractRows(doc *goquery.Document, selector string) game.Ledger {
	ledger := make(game.Ledger)

	doc.Find(selector).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		number := gameNumber(cells.Eq(0).Text())
		if number == "" {
			return
		}

		ledger.Add(number, strings.TrimSpace(cells.Eq(1).Text()), game.PrizeTier{
			Amount:    parse.PrizeAmount(cells.Eq(2).Text()),
			Remaining: parse.Count(cells.Eq(3).Text()),
		})
	})

	if len(ledger) == 0 {
		return nil
	}
	return ledger
}
