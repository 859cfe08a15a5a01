package usecase

import (
	"context"
	"log/slog"
	"time"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/filter"
	"ListingsMonitor/internal/ports"
)

// PipelineDeps wires all driven adapters into the run orchestrator.
type PipelineDeps struct {
	Source    ports.ListingSource
	Store     ports.SeenStore
	Notifiers []ports.Notifier
	Criteria  domain.Criteria
	Logger    *slog.Logger
}

// Pipeline implements one monitoring pass: scan every source, classify each
// listing as new or known, filter the new ones, persist state, notify.
type Pipeline struct {
	source    ports.ListingSource
	store     ports.SeenStore
	notifiers []ports.Notifier
	criteria  domain.Criteria
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:    deps.Source,
		store:     deps.Store,
		notifiers: deps.Notifiers,
		criteria:  deps.Criteria,
		logger:    logger,
	}
}

// RunOnce executes a full pass and returns the matches it reported. Every
// extracted id is marked known whether or not it matched, so a listing is
// never re-reported even if the criteria relax later. State is persisted
// exactly once, before notification; a save failure is logged and the
// in-memory result stands.
func (p *Pipeline) RunOnce(ctx context.Context, now time.Time) []domain.Listing {
	p.logger.Info("starting listing check")

	state := p.store.Load(ctx)
	sizeBefore := state.Len()

	listings := p.source.FetchAll(ctx, now)

	var matches []domain.Listing
	for _, listing := range listings {
		if state.IsKnown(listing.ID) {
			continue
		}
		state.MarkKnown(listing.ID)

		if filter.Matches(listing, p.criteria) {
			p.logger.Info("new matching listing",
				"id", listing.ID,
				"title", listing.Title,
				"price", listing.Price)
			matches = append(matches, listing)
		}
	}

	if err := p.store.Save(ctx, state); err != nil {
		p.logger.Error("save seen state", "error", err)
	}

	p.logger.Info("listing check completed",
		"listings", len(listings),
		"new", state.Len()-sizeBefore,
		"matches", len(matches))

	if len(matches) == 0 {
		return nil
	}

	for _, notifier := range p.notifiers {
		if err := notifier.Notify(ctx, matches, p.criteria); err != nil {
			p.logger.Error("send notification", "error", err)
		}
	}

	return matches
}
