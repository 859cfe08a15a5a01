package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/ports"
)

// stateFile is the on-disk layout of the seen-listing set.
type stateFile struct {
	KnownListingIDs []string  `json:"knownListingIds"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// FileStore persists seen-state as a single JSON document.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.SeenStore = (*FileStore)(nil)

// NewFileStore wires the state file path.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: log}
}

// Load reads the state file. A missing, unreadable, or malformed file yields
// an empty state so a first run or a damaged file never blocks the pipeline.
func (f *FileStore) Load(ctx context.Context) *domain.SeenState {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.logger.Error("read state file", "path", f.path, "error", err)
		}
		return domain.NewSeenState(nil)
	}

	var file stateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		f.logger.Error("parse state file", "path", f.path, "error", err)
		return domain.NewSeenState(nil)
	}

	state := domain.NewSeenState(file.KnownListingIDs)
	state.LastUpdated = file.LastUpdated
	return state
}

// Save writes the full id set through a temp file plus rename, so an
// interrupted write leaves the previous content intact.
func (f *FileStore) Save(ctx context.Context, state *domain.SeenState) error {
	raw, err := json.MarshalIndent(stateFile{
		KnownListingIDs: state.IDs(),
		LastUpdated:     time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
