package email

import (
	"context"
	"strings"
	"testing"

	"ListingsMonitor/internal/domain"
)

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	matches := []domain.Listing{
		{
			Title:       "Māja Olainē",
			Price:       50000,
			Area:        80,
			Description: "Olaines pag.",
			Link:        "https://www.ss.lv/msg/abc123.html",
		},
	}
	criteria := domain.Criteria{
		MinPrice:        10000,
		MaxPrice:        150000,
		MinArea:         50,
		IncludeKeywords: []string{"māja", "zeme"},
		ExcludeKeywords: []string{"bojāts"},
	}

	body := BuildDigest(matches, criteria)

	for _, want := range []string{
		"1. Māja Olainē",
		"Price: 50000 EUR",
		"Area: 80.0 m2",
		"Link: https://www.ss.lv/msg/abc123.html",
		"Price range: 10000 - 150000 EUR",
		"Include keywords: māja, zeme",
		"Exclude keywords: bojāts",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("digest missing %q:\n%s", want, body)
		}
	}
}

func TestNotifyNoMatchesSendsNothing(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", 0, "", "", "")
	if err := n.Notify(context.Background(), nil, domain.Criteria{}); err != nil {
		t.Fatalf("no matches must be a no-op, got %v", err)
	}
}
