package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/api"
	"github.com/notacoder13/nc-lottery-backend/internal/config"
	"github.com/notacoder13/nc-lottery-backend/internal/fetch"
	"github.com/notacoder13/nc-lottery-backend/internal/logger"
	"github.com/notacoder13/nc-lottery-backend/internal/notifier"
	"github.com/notacoder13/nc-lottery-backend/internal/refresh"
	"github.com/notacoder13/nc-lottery-backend/internal/scrape"
	"github.com/notacoder13/nc-lottery-backend/internal/store"
)

var (
	flagListen   string
	flagInterval time.Duration
	flagRedis    string
	flagDataDir  string
	flagNotify   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd creates the daemon command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lotteryd",
		Short: "Lottery game aggregation daemon",
		Long: `Periodically scrapes lottery game listings from the upstream sources,
merges them into a unified snapshot with per-game expected values, and
serves read queries over HTTP.`,
		RunE: runDaemon,
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "HTTP listen address (overrides LISTEN_ADDR)")
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "Refresh interval (overrides REFRESH_INTERVAL)")
	cmd.Flags().StringVar(&flagRedis, "redis", "", "Redis address for snapshot persistence (overrides REDIS_ADDR)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for file persistence (overrides DATA_DIR)")
	cmd.Flags().StringVar(&flagNotify, "notify", "", "Announcement channel: off, dryrun, or twitter (overrides NOTIFY)")

	return cmd
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}
	if flagInterval > 0 {
		cfg.RefreshInterval = flagInterval
	}
	if flagRedis != "" {
		cfg.RedisAddr = flagRedis
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagNotify != "" {
		cfg.Notify = flagNotify
	}

	log, err := logger.New("lotteryd", cfg.Env)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	blob, err := newBlobStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing persistence: %w", err)
	}

	st := store.New(blob, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A load failure is just "no cached snapshot": the immediate
	// refresh below repopulates it.
	loaded, err := st.Load(ctx)
	if err != nil {
		log.Warn("could not restore persisted snapshot", zap.Error(err))
	}

	fetcher := fetch.New(cfg.FetchTimeout)
	catalog := scrape.NewCatalog(fetcher, cfg.CatalogURL, log)
	ledger := scrape.NewPrizeLedger(fetcher, cfg.LedgerURL, log)
	draws := scrape.NewDrawGames(fetcher, drawConfigs(cfg), log)

	notify, err := newNotifier(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing notifier: %w", err)
	}

	pipeline := refresh.NewPipeline(catalog, ledger, draws, st, notify, log)
	scheduler := refresh.New(pipeline, cfg.RefreshInterval, log)
	scheduler.Start(ctx, !loaded)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.New(st, scheduler, log).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

// drawConfigs applies configured URL overrides to the default games.
func drawConfigs(cfg config.Config) []scrape.DrawConfig {
	configs := scrape.DefaultDrawGames()
	for i := range configs {
		switch configs[i].ID {
		case "powerball":
			configs[i].URL = cfg.PowerballURL
		case "megamillions":
			configs[i].URL = cfg.MegaMillionsURL
		}
	}
	return configs
}

func newBlobStore(cfg config.Config) (store.BlobStore, error) {
	if cfg.RedisAddr != "" {
		return store.NewRedisBlobStore(cfg.RedisAddr)
	}
	return store.NewFileBlobStore(cfg.DataDir)
}

func newNotifier(cfg config.Config, log *zap.Logger) (notifier.Notifier, error) {
	switch cfg.Notify {
	case "", "off":
		return nil, nil
	case "dryrun":
		return notifier.NewDryRunNotifier(log), nil
	case "twitter":
		return notifier.NewTwitterNotifier()
	default:
		return nil, fmt.Errorf("unknown notify mode: %s", cfg.Notify)
	}
}
