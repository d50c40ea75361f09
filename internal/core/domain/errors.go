package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnknownInstitution indicates no catalog mapping exists for the institution
	ErrUnknownInstitution = errors.New("unknown institution")

	// ErrMissingCredential indicates a required server-held secret is not configured
	ErrMissingCredential = errors.New("missing credential")

	// ErrNoListingURLs indicates the listing page yielded no matching detail links
	ErrNoListingURLs = errors.New("no detail links found")

	// ErrAllFetchesFailed indicates every detail fetch in a batch failed
	ErrAllFetchesFailed = errors.New("all fetches failed")

	// ErrEmptyDocument indicates a fetched document was empty or implausibly short
	ErrEmptyDocument = errors.New("document empty or too short")
)

// ValidationError carries every business rule a candidate record violated.
// Rules are checked exhaustively; Messages never holds just the first failure.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// UpstreamError indicates the document-fetch collaborator returned a
// non-success status or the call itself failed.
type UpstreamError struct {
	URL        string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream fetch failed for %s: status %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream fetch failed for %s: %s", e.URL, e.Message)
}
