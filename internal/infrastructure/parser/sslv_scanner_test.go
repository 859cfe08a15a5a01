package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ListingsMonitor/internal/scanner"
)

const listingPage = `
<table>
  <tr id="head_line"><td>Sludinājumi</td></tr>
  <tr id="tr_50011001">
    <td><img src="thumb1.jpg"></td>
    <td><a href="/msg/lv/real-estate/homes/riga-region/olaine/abc123.html">Māja Olainē</a></td>
    <td>Olaines pag.</td>
    <td>80 m²</td>
    <td>50,000 €</td>
  </tr>
  <tr id="tr_50011002">
    <td><img src="thumb2.jpg"></td>
    <td><a href="https://www.ss.lv/msg/lv/real-estate/homes/riga-region/olaine/def456.html">Liela māja</a></td>
    <td>Jaunolaine</td>
    <td>150 m2</td>
    <td>200,000 €</td>
  </tr>
  <tr id="tr_50011003">
    <td><img src="thumb3.jpg"></td>
    <td>Rinda bez saites</td>
    <td>Olaine</td>
    <td>60 m²</td>
    <td>30,000 €</td>
  </tr>
</table>`

func TestExtractListings(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingPage))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	sourceURL := "https://www.ss.lv/lv/real-estate/homes-summer-residences/riga-region/olaines-pag/filter/"

	sc := NewSSLVScanner(nil, "")
	listings := sc.extractListings(doc, sourceURL, now)

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.ID != "50011001" {
		t.Fatalf("unexpected id: %s", first.ID)
	}
	if first.Title != "Māja Olainē" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.Link != "https://www.ss.lv/msg/lv/real-estate/homes/riga-region/olaine/abc123.html" {
		t.Fatalf("relative link not resolved: %s", first.Link)
	}
	if first.Price != 50000 {
		t.Fatalf("unexpected price: %v", first.Price)
	}
	if first.Area != 80 {
		t.Fatalf("unexpected area: %v", first.Area)
	}
	if first.Description != "Olaines pag." {
		t.Fatalf("unexpected description: %q", first.Description)
	}
	if first.SourceURL != sourceURL {
		t.Fatalf("unexpected source url: %s", first.SourceURL)
	}
	if !first.ScrapedAt.Equal(now) {
		t.Fatalf("unexpected scraped-at: %v", first.ScrapedAt)
	}

	second := listings[1]
	if second.ID != "50011002" {
		t.Fatalf("unexpected id: %s", second.ID)
	}
	if second.Link != "https://www.ss.lv/msg/lv/real-estate/homes/riga-region/olaine/def456.html" {
		t.Fatalf("absolute link mangled: %s", second.Link)
	}
	if second.Area != 150 {
		t.Fatalf("ascii area marker not parsed: %v", second.Area)
	}
}

func TestExtractListingsSkipsRowWithoutLink(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingPage))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	sc := NewSSLVScanner(nil, "")
	listings := sc.extractListings(doc, "https://www.ss.lv/test", time.Now())

	for _, listing := range listings {
		if listing.ID == "50011003" {
			t.Fatal("row without a hyperlink must be skipped")
		}
	}
}

func TestSSLVScannerScan(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		_, _ = w.Write([]byte(listingPage))
	}))
	defer server.Close()

	sc := NewSSLVScanner(server.Client(), "")
	listings, err := sc.Scan(context.Background(), scanner.Request{
		SourceURL: server.URL,
		Now:       time.Now(),
	})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
}

func TestSSLVScannerScanNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sc := NewSSLVScanner(server.Client(), "")
	if _, err := sc.Scan(context.Background(), scanner.Request{SourceURL: server.URL}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
