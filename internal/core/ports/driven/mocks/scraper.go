package mocks

import (
	"context"
	"sync"

	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Ensure MockScraper implements PageScraper
var _ driven.PageScraper = (*MockScraper)(nil)

// MockScraper is a scripted PageScraper for testing. Responses are keyed by
// URL; unscripted URLs return the configured default error.
type MockScraper struct {
	mu sync.Mutex

	// LinksByURL scripts Links responses.
	LinksByURL map[string][]string

	// MarkdownByURL scripts Markdown responses.
	MarkdownByURL map[string]string

	// ErrByURL scripts per-URL failures for either method.
	ErrByURL map[string]error

	// Err is returned for any unscripted URL when set.
	Err error

	// Calls records every URL requested, in order.
	Calls []string
}

// NewMockScraper creates an empty MockScraper.
func NewMockScraper() *MockScraper {
	return &MockScraper{
		LinksByURL:    make(map[string][]string),
		MarkdownByURL: make(map[string]string),
		ErrByURL:      make(map[string]error),
	}
}

// Links returns the scripted link list for url.
func (m *MockScraper) Links(_ context.Context, url string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, url)

	if err, ok := m.ErrByURL[url]; ok {
		return nil, err
	}
	if links, ok := m.LinksByURL[url]; ok {
		return links, nil
	}
	return nil, m.Err
}

// Markdown returns the scripted markdown for url.
func (m *MockScraper) Markdown(_ context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, url)

	if err, ok := m.ErrByURL[url]; ok {
		return "", err
	}
	if md, ok := m.MarkdownByURL[url]; ok {
		return md, nil
	}
	return "", m.Err
}
