package parser

import (
	"context"
	"log/slog"
	"time"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/ports"
	"ListingsMonitor/internal/scanner"
)

// StrategySource implements ListingSource via a registered scanner strategy
// applied to each configured source URL in order.
type StrategySource struct {
	registry    *scanner.Registry
	scannerName string
	sources     []string
	delay       time.Duration
	logger      *slog.Logger
}

var _ ports.ListingSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with the monitored URLs.
// delay is the pause observed between consecutive sources.
func NewStrategySource(reg *scanner.Registry, scannerName string, sources []string, delay time.Duration, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:    reg,
		scannerName: scannerName,
		sources:     sources,
		delay:       delay,
		logger:      log,
	}
}

// FetchAll scans every monitored page. A failing source contributes zero
// listings for this run and the remaining sources are still scanned; the
// next scheduled run retries it naturally.
func (s *StrategySource) FetchAll(ctx context.Context, now time.Time) []domain.Listing {
	strategy, err := s.registry.Resolve(s.scannerName)
	if err != nil {
		s.logger.Error("resolve scanner", "scanner", s.scannerName, "error", err)
		return nil
	}

	var aggregated []domain.Listing
	for i, sourceURL := range s.sources {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		listings, err := strategy.Scan(ctx, scanner.Request{SourceURL: sourceURL, Now: now})
		if err != nil {
			s.logger.Error("scan source", "url", sourceURL, "error", err)
			continue
		}

		s.logger.Info("source scanned", "url", sourceURL, "listings", len(listings))
		aggregated = append(aggregated, listings...)
	}

	return aggregated
}
