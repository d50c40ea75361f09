package driven

import "context"

// PageScraper fetches rendered web page content from the outside world.
// Implementations hold their own per-request timeouts; a non-success
// upstream status surfaces as a *domain.UpstreamError.
type PageScraper interface {
	// Links returns the absolute outbound link URLs found on the page.
	Links(ctx context.Context, url string) ([]string, error)

	// Markdown returns the page's text content rendered as markdown.
	Markdown(ctx context.Context, url string) (string, error)
}
