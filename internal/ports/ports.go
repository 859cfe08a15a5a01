package ports

import (
	"context"
	"time"

	"ListingsMonitor/internal/domain"
)

// ListingSource pulls the current listings from every monitored page.
// Per-source failures are logged inside the source and surface only as
// missing records, never as an error.
type ListingSource interface {
	FetchAll(ctx context.Context, now time.Time) []domain.Listing
}

// SeenStore persists the set of listing IDs observed across runs. Load is
// total: any storage failure yields an empty state.
type SeenStore interface {
	Load(ctx context.Context) *domain.SeenState
	Save(ctx context.Context, state *domain.SeenState) error
}

// Notifier delivers one run's matches to a channel (email, Telegram).
type Notifier interface {
	Notify(ctx context.Context, matches []domain.Listing, criteria domain.Criteria) error
}

// Scheduler controls when monitoring runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
