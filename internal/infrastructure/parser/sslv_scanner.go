package parser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/normalize"
	"ListingsMonitor/internal/scanner"
)

const (
	sslvBaseURL = "https://www.ss.lv"
	rowIDPrefix = "tr_"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Rows with fewer cells are section headers or banners, not listings.
	minListingCells = 4
)

// SSLVScanner extracts listings from ss.lv category filter pages. Listings
// live in table rows whose id attribute carries a tr_ prefix followed by the
// board's own advertisement identifier.
type SSLVScanner struct {
	client    *http.Client
	userAgent string
}

// NewSSLVScanner wires an HTTP client; a nil client gets a 30s timeout.
func NewSSLVScanner(client *http.Client, userAgent string) *SSLVScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &SSLVScanner{client: client, userAgent: userAgent}
}

// Name identifies the strategy inside the registry.
func (s *SSLVScanner) Name() string {
	return "sslv"
}

// Scan fetches one monitored page and returns every listing row it contains.
func (s *SSLVScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Listing, error) {
	doc, err := s.fetchDocument(ctx, req.SourceURL)
	if err != nil {
		return nil, err
	}
	return s.extractListings(doc, req.SourceURL, req.Now), nil
}

func (s *SSLVScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// extractListings walks the listing rows of one page. A malformed row is
// skipped and the remaining rows are still processed.
func (s *SSLVScanner) extractListings(doc *goquery.Document, sourceURL string, now time.Time) []domain.Listing {
	var listings []domain.Listing

	doc.Find(`tr[id^="` + rowIDPrefix + `"]`).Each(func(_ int, row *goquery.Selection) {
		rowID, _ := row.Attr("id")
		id := strings.TrimPrefix(rowID, rowIDPrefix)
		if id == "" {
			return
		}

		cells := row.Find("td")
		if cells.Length() < minListingCells {
			return
		}

		title, link, ok := extractTitleLink(cells)
		if !ok {
			return
		}

		listings = append(listings, domain.Listing{
			ID:          id,
			Title:       title,
			Price:       extractPrice(cells),
			Area:        extractArea(cells),
			Description: extractDescription(cells, title),
			Link:        link,
			SourceURL:   sourceURL,
			ScrapedAt:   now,
		})
	})

	return listings
}

// extractTitleLink returns the text and resolved href of the first cell that
// carries a hyperlink. Rows without a linked cell are not listings.
func extractTitleLink(cells *goquery.Selection) (title, link string, ok bool) {
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		href, exists := cell.Find("a[href]").First().Attr("href")
		if !exists || href == "" {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = sslvBaseURL + href
		}
		title = strings.TrimSpace(cell.Text())
		link = href
		return false
	})
	return title, link, link != ""
}

func extractPrice(cells *goquery.Selection) float64 {
	var price float64
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := strings.TrimSpace(cell.Text())
		if hasCurrencyMarker(text) {
			price = normalize.ParsePrice(text)
			return false
		}
		return true
	})
	return price
}

func extractArea(cells *goquery.Selection) float64 {
	var area float64
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := strings.TrimSpace(cell.Text())
		if hasAreaMarker(text) {
			area = normalize.ParseArea(text)
			return false
		}
		return true
	})
	return area
}

// extractDescription joins every remaining informational cell in row order.
func extractDescription(cells *goquery.Selection, title string) string {
	var parts []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if text == "" || text == title || hasCurrencyMarker(text) || hasAreaMarker(text) {
			return
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, " | ")
}

func hasCurrencyMarker(text string) bool {
	return strings.Contains(text, "€") || strings.Contains(text, "EUR")
}

func hasAreaMarker(text string) bool {
	return strings.Contains(text, "m²") || strings.Contains(text, "m2")
}
