package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/config"
	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/logger"
	"github.com/notacoder13/nc-lottery-backend/internal/refresh"
	"github.com/notacoder13/nc-lottery-backend/internal/scrape"
	"github.com/notacoder13/nc-lottery-backend/internal/store"
)

func main() {
	cmd := &cobra.Command{
		Use:   "lottery-scrape",
		Short: "Run a single scrape and print the snapshot",
		Long: `Fetches the catalog, prize ledger, and draw game pages once, merges
them into a snapshot, and prints it as JSON. Nothing is persisted,
nothing is announced. Useful for checking what the daemon would see.`,
		RunE: runOnce,
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	log, err := logger.New("lottery-scrape", cfg.Env)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	st := store.New(store.NewMemoryBlobStore(), log)

	fetcher := fetch.New(cfg.FetchTimeout)
	catalog := scrape.NewCatalog(fetcher, cfg.CatalogURL, log)
	ledger := scrape.NewPrizeLedger(fetcher, cfg.LedgerURL, log)

	configs := scrape.DefaultDrawGames()
	for i := range configs {
		switch configs[i].ID {
		case "powerball":
			configs[i].URL = cfg.PowerballURL
		case "megamillions":
			configs[i].URL = cfg.MegaMillionsURL
		}
	}
	draws := scrape.NewDrawGames(fetcher, configs, log)

	pipeline := refresh.NewPipeline(catalog, ledger, draws, st, nil, log)
	snap, err := pipeline.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("running scrape: %w", err)
	}

	log.Info("scrape complete",
		zap.Int("instant_games", len(snap.InstantGames)),
		zap.Int("draw_games", len(snap.DrawGames)))

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
