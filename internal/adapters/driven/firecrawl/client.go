// Package firecrawl implements the page-scrape port against a Firecrawl
// style scrape API: one POST endpoint that renders a URL and returns the
// requested representations.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageScraper = (*Client)(nil)

const (
	defaultBaseURL = "https://api.firecrawl.dev"

	// Upstream render budgets in milliseconds. Listing pages carry more
	// script-driven navigation than detail pages and get the larger one.
	linksTimeoutMS    = 30000
	markdownTimeoutMS = 25000
)

// Client calls the scrape API. The API key is held server-side only and is
// sent as a bearer token; it never appears in any response or log line.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a scrape client. An empty key is rejected at call time
// with domain.ErrMissingCredential rather than here, so construction can
// happen before configuration is validated.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	Timeout int      `json:"timeout"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string   `json:"markdown"`
		Links    []string `json:"links"`
	} `json:"data"`
	Error string `json:"error"`
}

// Links scrapes url and returns its outbound links.
func (c *Client) Links(ctx context.Context, url string) ([]string, error) {
	resp, err := c.scrape(ctx, scrapeRequest{
		URL:     url,
		Formats: []string{"links"},
		Timeout: linksTimeoutMS,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data.Links, nil
}

// Markdown scrapes url and returns its markdown rendering.
func (c *Client) Markdown(ctx context.Context, url string) (string, error) {
	resp, err := c.scrape(ctx, scrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
		Timeout: markdownTimeoutMS,
	})
	if err != nil {
		return "", err
	}
	return resp.Data.Markdown, nil
}

func (c *Client) scrape(ctx context.Context, payload scrapeRequest) (*scrapeResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: scrape API key not configured", domain.ErrMissingCredential)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{URL: payload.URL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &domain.UpstreamError{
			URL:        payload.URL,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.UpstreamError{URL: payload.URL, Message: "malformed response: " + err.Error()}
	}
	if !parsed.Success {
		return nil, &domain.UpstreamError{URL: payload.URL, Message: parsed.Error}
	}
	return &parsed, nil
}
