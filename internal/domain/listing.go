package domain

import (
	"sort"
	"time"
)

// Listing is a core entity describing one advertisement extracted from a
// monitored page. Price and Area use 0 as the "could not be extracted"
// sentinel; the matcher never rejects on an unknown value.
type Listing struct {
	ID          string
	Title       string
	Price       float64
	Area        float64
	Description string
	Link        string
	SourceURL   string
	ScrapedAt   time.Time
}

// Criteria is the declarative filter a new listing must satisfy to be reported.
type Criteria struct {
	MinPrice        float64
	MaxPrice        float64
	MinArea         float64
	IncludeKeywords []string
	ExcludeKeywords []string
}

// SeenState holds every listing ID observed in any prior run. A listing is
// reported at most once: once its ID enters the set it stays there, whether
// or not it matched the criteria at the time.
type SeenState struct {
	ids         map[string]struct{}
	LastUpdated time.Time
}

// NewSeenState builds a state from a flat id list (nil for an empty state).
func NewSeenState(ids []string) *SeenState {
	state := &SeenState{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		state.ids[id] = struct{}{}
	}
	return state
}

// IsKnown reports whether the id was observed before.
func (s *SeenState) IsKnown(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// MarkKnown inserts the id; inserting an existing id is a no-op.
func (s *SeenState) MarkKnown(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Len returns the number of known ids.
func (s *SeenState) Len() int {
	return len(s.ids)
}

// IDs returns the known ids sorted, for stable serialization.
func (s *SeenState) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
