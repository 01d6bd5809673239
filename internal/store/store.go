// Package store holds the current merged snapshot and persists each
// replacement through a durable blob store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// SnapshotKey is the blob key the snapshot persists under.
const SnapshotKey = "lottery:snapshot"

// Store is the single owner of the installed snapshot. Replace swaps it
// atomically; readers only ever see a complete snapshot, either the
// previous one or the next.
type Store struct {
	mu     sync.RWMutex
	snap   game.Snapshot
	blob   BlobStore
	logger *zap.Logger
}

// New creates a Store backed by blob. The initial snapshot is the empty
// zero value until Load or the first Replace.
func New(blob BlobStore, logger *zap.Logger) *Store {
	return &Store{blob: blob, logger: logger}
}

// Current returns the installed snapshot. It never blocks on an
// in-flight Replace beyond the swap itself.
func (s *Store) Current() game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Load restores the persisted snapshot, if any. It returns false with a
// nil error when no snapshot exists, and false with the cause when the
// persisted form is unreadable or malformed; callers treat both as "no
// cached snapshot".
func (s *Store) Load(ctx context.Context) (bool, error) {
	data, err := s.blob.Read(ctx, SnapshotKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("parsing snapshot: %w", err)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info("restored persisted snapshot",
		zap.Int("games", snap.Total()),
		zap.Time("last_updated", snap.LastUpdated),
	)
	return true, nil
}

// Replace installs snap as the current snapshot and persists it. The
// in-memory swap sticks even when persistence fails; the persistence
// error is returned so the refresh caller can surface it.
func (s *Store) Replace(ctx context.Context, snap game.Snapshot) error {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.blob.Write(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}
