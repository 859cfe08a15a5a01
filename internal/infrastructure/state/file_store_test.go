package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"ListingsMonitor/internal/domain"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), slog.Default())

	state := store.Load(context.Background())
	if state.Len() != 0 {
		t.Fatalf("expected empty state, got %d ids", state.Len())
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewFileStore(path, slog.Default())
	state := store.Load(context.Background())
	if state.Len() != 0 {
		t.Fatalf("corrupt file must load as empty state, got %d ids", state.Len())
	}
}

func TestFileStoreSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path, slog.Default())
	ctx := context.Background()

	state := domain.NewSeenState(nil)
	state.MarkKnown("a1")
	state.MarkKnown("a2")
	state.MarkKnown("a2")

	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded := store.Load(ctx)
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", loaded.Len())
	}
	if !loaded.IsKnown("a1") || !loaded.IsKnown("a2") {
		t.Fatal("saved ids missing after reload")
	}
	if loaded.LastUpdated.IsZero() {
		t.Fatal("lastUpdated not persisted")
	}
}

func TestFileStoreSaveWireFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path, slog.Default())

	state := domain.NewSeenState([]string{"b2", "a1"})
	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("state file is not valid JSON: %v", err)
	}
	if _, ok := payload["knownListingIds"]; !ok {
		t.Fatal("missing knownListingIds field")
	}
	if _, ok := payload["lastUpdated"]; !ok {
		t.Fatal("missing lastUpdated field")
	}

	var ids struct {
		KnownListingIDs []string `json:"knownListingIds"`
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		t.Fatalf("decode ids: %v", err)
	}
	if len(ids.KnownListingIDs) != 2 || ids.KnownListingIDs[0] != "a1" {
		t.Fatalf("ids not sorted and complete: %v", ids.KnownListingIDs)
	}
}
