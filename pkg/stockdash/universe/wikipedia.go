package universe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoSymbols is returned when a listing parses but yields no symbols.
var ErrNoSymbols = errors.New("no symbols found")

// WikipediaSource scrapes the S&P 500 constituents table.
type WikipediaSource struct {
	URL    string
	Client *http.Client
}

func NewWikipediaSource(url string) *WikipediaSource {
	return &WikipediaSource{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
}

func (s *WikipediaSource) Load(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("universe request: %w", err)
	}
	req.Header.Set("User-Agent", "stockdash/1.0 (+https://github.com/komsit37/stockdash)")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("universe fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("universe fetch: HTTP status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("universe parse: %w", err)
	}
	symbols := parseConstituents(doc)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("universe parse %s: %w", s.URL, ErrNoSymbols)
	}
	return symbols, nil
}

// parseConstituents reads the first column of the constituents table body.
func parseConstituents(doc *goquery.Document) []string {
	table := doc.Find("table#constituents").First()
	if table.Length() == 0 {
		table = doc.Find("table.wikitable").First()
	}
	var raw []string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		if sym := strings.TrimSpace(cell.Text()); sym != "" {
			raw = append(raw, sym)
		}
	})
	return dedupe(raw)
}
