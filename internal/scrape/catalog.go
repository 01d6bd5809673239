package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/metrics"
	"github.com/notacoder13/nc-lottery-backend/internal/parse"
)

// Catalog scrapes the instant-ticket catalog page.
type Catalog struct {
	fetcher *fetch.Fetcher
	url     string
	logger  *zap.Logger
}

// NewCatalog creates a catalog adapter. An empty url selects the
// default catalog page.
func NewCatalog(f *fetch.Fetcher, url string, logger *zap.Logger) *Catalog {
	if url == "" {
		url = CatalogURL
	}
	return &Catalog{fetcher: f, url: url, logger: logger}
}

// Fetch scrapes the catalog and returns every listed instant game. Any
// transport or extraction failure degrades to an empty result.
func (c *Catalog) Fetch(ctx context.Context) CatalogResult {
	timer := prometheus.NewTimer(metrics.ScrapeDuration.WithLabelValues("catalog"))
	defer timer.ObserveDuration()

	doc, err := c.fetcher.Document(ctx, c.url)
	if err != nil {
		return c.degrade(fmt.Errorf("fetching catalog: %w", err))
	}

	games := c.extractCards(doc)
	if len(games) == 0 {
		games = c.extractTable(doc)
	}
	if len(games) == 0 {
		return c.degrade(errors.New("no games matched any extraction strategy"))
	}

	return CatalogResult{Games: games}
}

func (c *Catalog) degrade(err error) CatalogResult {
	c.logger.Warn("instant catalog degraded to empty result", zap.Error(err))
	metrics.AdapterDegradations.WithLabelValues("catalog").Inc()
	return CatalogResult{Err: err}
}

// extractCards walks the game-card grid the catalog page normally
// renders.
func (c *Catalog) extractCards(doc *goquery.Document) []game.Game {
	now := time.Now().UTC()
	games := make([]game.Game, 0)

	doc.Find("div.game-card, li.game-item, article.game").Each(func(i int, sel *goquery.Selection) {
		name := firstText(sel, ".game-title", ".game-name", "h3", "h2")
		if name == "" {
			return
		}

		g := newInstantGame(len(games), now)
		g.Name = name
		g.GameNumber = gameNumber(firstText(sel, ".game-number", ".game-no"))
		g.Price = parse.Currency(firstText(sel, ".game-price", ".ticket-price", ".price"))
		g.TopPrize = parse.PrizeAmount(firstText(sel, ".top-prize", ".game-top-prize"))
		if odds := parse.OddsRatio(firstText(sel, ".game-odds", ".overall-odds", ".odds")); odds != "" {
			g.OverallOdds = odds
		}

		games = append(games, g)
	})

	return games
}

// extractTable is the generic fallback: scan table rows that look like
// game listings (number, name, price, top prize, optional odds).
func (c *Catalog) extractTable(doc *goquery.Document) []game.Game {
	now := time.Now().UTC()
	games := make([]game.Game, 0)

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header or spacer row
		}

		name := strings.TrimSpace(cells.Eq(1).Text())
		if name == "" {
			return
		}

		g := newInstantGame(len(games), now)
		g.Name = name
		g.GameNumber = gameNumber(cells.Eq(0).Text())
		g.Price = parse.Currency(cells.Eq(2).Text())
		g.TopPrize = parse.PrizeAmount(cells.Eq(3).Text())
		if cells.Length() > 4 {
			if odds := parse.OddsRatio(cells.Eq(4).Text()); odds != "" {
				g.OverallOdds = odds
			}
		}

		games = append(games, g)
	})

	return games
}

// newInstantGame carries the catalog defaults: a positional ID, odds of
// "1 in 4.0" until a parseable figure replaces them, a neutral expected
// value, and a zero top-prize remaining count pending the ledger merge.
func newInstantGame(index int, now time.Time) game.Game {
	return game.Game{
		ID:            fmt.Sprintf("instant-%d", index+1),
		Kind:          game.KindInstant,
		OverallOdds:   DefaultInstantOdds,
		ExpectedValue: game.DefaultExpectedValue,
		LastUpdated:   now,
	}
}
