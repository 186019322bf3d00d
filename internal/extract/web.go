package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 10 * time.Second

	// Some sites reject requests without a browser user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Web fetches URLs and extracts their cleaned visible text.
type Web struct {
	client *http.Client
	logger *slog.Logger
}

// NewWeb creates a web extractor with a bounded request timeout.
func NewWeb(logger *slog.Logger) *Web {
	return &Web{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger.With("system", "extract"),
	}
}

// Fetch retrieves a URL and returns its visible text with script, style,
// and chrome elements removed and blank lines collapsed. Failures are
// reported as errors, never embedded in the returned text.
func (w *Web) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	doc.Find("script, style, noscript, nav, footer, header").Remove()

	return cleanText(doc.Text()), nil
}

// cleanText trims each line and drops blank ones, mirroring the
// whitespace-heavy output of naive DOM text extraction into something
// usable as LLM source material.
func cleanText(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		for _, chunk := range strings.Split(strings.TrimSpace(line), "  ") {
			if trimmed := strings.TrimSpace(chunk); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}
	return strings.Join(lines, "\n")
}
