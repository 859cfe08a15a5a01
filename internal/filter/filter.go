package filter

import (
	"strings"

	"ListingsMonitor/internal/domain"
)

// Matches reports whether a listing satisfies the criteria. A zero price or
// area means the value could not be extracted and never fails a numeric
// bound. Any internal failure counts as a non-match.
func Matches(listing domain.Listing, criteria domain.Criteria) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if listing.Price > 0 && (listing.Price < criteria.MinPrice || listing.Price > criteria.MaxPrice) {
		return false
	}

	if listing.Area > 0 && listing.Area < criteria.MinArea {
		return false
	}

	haystack := strings.ToLower(listing.Title + " " + listing.Description)

	if len(criteria.IncludeKeywords) > 0 && !containsAny(haystack, criteria.IncludeKeywords) {
		return false
	}

	if len(criteria.ExcludeKeywords) > 0 && containsAny(haystack, criteria.ExcludeKeywords) {
		return false
	}

	return true
}

func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
