package parser

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/scanner"
)

type stubScanner struct {
	failURL string
}

func (s *stubScanner) Name() string { return "stub" }

func (s *stubScanner) Scan(_ context.Context, req scanner.Request) ([]domain.Listing, error) {
	if req.SourceURL == s.failURL {
		return nil, errors.New("boom")
	}
	return []domain.Listing{{ID: "id-" + req.SourceURL, SourceURL: req.SourceURL}}, nil
}

func TestFetchAllSkipsFailingSource(t *testing.T) {
	t.Parallel()

	registry := scanner.NewRegistry()
	registry.Register(&stubScanner{failURL: "bad"})

	source := NewStrategySource(registry, "stub", []string{"bad", "good"}, 0, slog.Default())

	listings := source.FetchAll(context.Background(), time.Now())
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].SourceURL != "good" {
		t.Fatalf("unexpected source: %s", listings[0].SourceURL)
	}
}

func TestFetchAllUnknownScanner(t *testing.T) {
	t.Parallel()

	source := NewStrategySource(scanner.NewRegistry(), "missing", []string{"a"}, 0, slog.Default())
	if listings := source.FetchAll(context.Background(), time.Now()); listings != nil {
		t.Fatalf("expected no listings, got %d", len(listings))
	}
}
