// Package webfetch implements the page-scrape port with plain HTTP GETs,
// for sites that serve their content without client-side rendering. It
// needs no API key and is the fallback when no scrape service is
// configured.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageScraper = (*Fetcher)(nil)

const (
	linksTimeout    = 30 * time.Second
	markdownTimeout = 25 * time.Second

	userAgent = "syllabus-core/1.0"

	// maxBodyBytes caps document downloads; syllabus pages are small and
	// anything past this is not one.
	maxBodyBytes = 4 << 20
)

// Fetcher fetches pages directly and derives links and markdown itself.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: linksTimeout},
	}
}

// Links fetches pageURL and returns every anchor href resolved against it.
func (f *Fetcher) Links(ctx context.Context, pageURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, linksTimeout)
	defer cancel()

	html, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractLinks(html, pageURL)
}

// Markdown fetches pageURL and converts its HTML to markdown.
func (f *Fetcher) Markdown(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, markdownTimeout)
	defer cancel()

	html, err := f.get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert %s to markdown: %w", pageURL, err)
	}
	return markdown, nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{URL: pageURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.UpstreamError{URL: pageURL, StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &domain.UpstreamError{URL: pageURL, Message: err.Error()}
	}
	return string(body), nil
}

// extractLinks pulls every href from anchor tags, resolving relative URLs
// against baseURL and dropping non-navigable schemes.
func extractLinks(html, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", baseURL, err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %s: %w", baseURL, err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if resolved := resolveHref(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

func resolveHref(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
