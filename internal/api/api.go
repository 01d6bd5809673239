// Package api exposes the read-side HTTP endpoints: game queries,
// aggregate stats, the on-demand refresh trigger, and liveness.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
	"github.com/notacoder13/nc-lottery-backend/internal/store"
)

// Refresher triggers an aggregation run and reports its outcome.
type Refresher interface {
	Trigger(ctx context.Context) (game.Snapshot, error)
}

// API serves read queries against the current snapshot.
type API struct {
	store     *store.Store
	refresher Refresher
	logger    *zap.Logger
	startedAt time.Time
}

// New creates the API over the snapshot store and refresh scheduler.
func New(st *store.Store, refresher Refresher, logger *zap.Logger) *API {
	return &API{
		store:     st,
		refresher: refresher,
		logger:    logger,
		startedAt: time.Now().UTC(),
	}
}

// Router returns the HTTP routes.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/games", a.listAll)
	r.Get("/v1/games/instant", a.listInstant)
	r.Get("/v1/games/draw", a.listDraw)
	r.Post("/v1/refresh", a.triggerRefresh)
	r.Get("/v1/stats", a.getStats)
	r.Get("/v1/health", a.health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// GamesResponse is the envelope for the game listing endpoints.
type GamesResponse struct {
	Games       []game.Game `json:"games"`
	LastUpdated time.Time   `json:"last_updated"`
	Total       int         `json:"total"`
}

// RefreshResponse reports the outcome of an on-demand refresh.
type RefreshResponse struct {
	OK          bool      `json:"ok"`
	LastUpdated time.Time `json:"last_updated"`
	Error       string    `json:"error,omitempty"`
}

// StatsResponse carries the aggregate reductions over the snapshot.
type StatsResponse struct {
	game.Stats
	LastUpdated time.Time `json:"last_updated"`
}

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status             string    `json:"status"`
	Now                time.Time `json:"now"`
	UptimeSeconds      float64   `json:"uptime_seconds"`
	SnapshotAgeSeconds float64   `json:"snapshot_age_seconds"`
}

// writeJSON serializes v and sets the status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func gamesResponse(games []game.Game, lastUpdated time.Time) GamesResponse {
	if games == nil {
		games = []game.Game{}
	}
	return GamesResponse{Games: games, LastUpdated: lastUpdated, Total: len(games)}
}

func (a *API) listAll(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, gamesResponse(snap.Games(), snap.LastUpdated))
}

func (a *API) listInstant(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, gamesResponse(snap.InstantGames, snap.LastUpdated))
}

func (a *API) listDraw(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, gamesResponse(snap.DrawGames, snap.LastUpdated))
}

// triggerRefresh runs (or coalesces into) a refresh cycle. Individual
// source degradations still count as success; only pipeline-level
// failures such as an unreachable persistence store surface here.
func (a *API) triggerRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := a.refresher.Trigger(r.Context())
	if err != nil {
		a.logger.Warn("on-demand refresh failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, RefreshResponse{
			LastUpdated: snap.LastUpdated,
			Error:       err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{OK: true, LastUpdated: snap.LastUpdated})
}

func (a *API) getStats(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, StatsResponse{
		Stats:       game.ComputeStats(&snap),
		LastUpdated: snap.LastUpdated,
	})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	snap := a.store.Current()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:             "ok",
		Now:                now,
		UptimeSeconds:      now.Sub(a.startedAt).Seconds(),
		SnapshotAgeSeconds: snap.Age(now).Seconds(),
	})
}
