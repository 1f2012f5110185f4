package metadata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cafescout/contexts/moderation/submission-service/ports"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionLength = 500

// Fetcher pulls title and description from a submitted cafe website.
// Best-effort enrichment only; callers treat failures as non-fatal.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (ports.SiteMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.SiteMetadata{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "cafescout-enrichment/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return ports.SiteMetadata{}, fmt.Errorf("fetch website: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.SiteMetadata{}, fmt.Errorf("website status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ports.SiteMetadata{}, fmt.Errorf("parse html: %w", err)
	}

	meta := ports.SiteMetadata{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = strings.TrimSpace(content)
	}
	if meta.Description == "" {
		if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
			meta.Description = strings.TrimSpace(content)
		}
	}
	if len(meta.Description) > maxDescriptionLength {
		meta.Description = meta.Description[:maxDescriptionLength]
	}
	return meta, nil
}
