package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned by BlobStore.Read when no blob exists under
// the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is the durable home for serialized snapshots.
type BlobStore interface {
	Write(ctx context.Context, key string, data []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
}

// FileBlobStore keeps blobs as files under a local data directory. It
// is the fallback when no Redis address is configured.
type FileBlobStore struct {
	dataDir string
}

// NewFileBlobStore creates the data directory if needed. A leading "~/"
// expands to the user's home directory.
func NewFileBlobStore(dataDir string) (*FileBlobStore, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileBlobStore{dataDir: dataDir}, nil
}

func (s *FileBlobStore) path(key string) string {
	// Keys like "lottery:snapshot" become plain filenames.
	return filepath.Join(s.dataDir, strings.ReplaceAll(key, ":", "_")+".json")
}

// Write stores data under key, replacing any previous blob.
func (s *FileBlobStore) Write(ctx context.Context, key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	return nil
}

// Read returns the blob stored under key, or ErrNotFound.
func (s *FileBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// MemoryBlobStore keeps blobs in process memory. The one-shot scrape
// command uses it to run the pipeline without touching durable state.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Write stores a copy of data under key.
func (s *MemoryBlobStore) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

// Read returns the blob stored under key, or ErrNotFound.
func (s *MemoryBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}
