package driving

import (
	"context"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// IngestRequest identifies one department catalog to ingest.
type IngestRequest struct {
	InstitutionID string `json:"institution_id" validate:"required"`
	DepartmentID  string `json:"department_id" validate:"required"`
	GradeLevel    int    `json:"grade_level" validate:"min=0,max=6"`
	AcademicYear  int    `json:"academic_year" validate:"required,min=2000,max=2100"`
}

// CacheKey is the composite key used for listing-resolution caching.
func (r IngestRequest) CacheKey() string {
	return joinKey(r.InstitutionID, r.DepartmentID, r.GradeLevel, r.AcademicYear)
}

// ListingResolution is the outcome of Stage 1: the listing URL that was
// scraped and the de-duplicated detail URLs that matched the expected
// pattern.
type ListingResolution struct {
	ListingURL string   `json:"listing_url"`
	URLs       []string `json:"urls"`
	TotalURLs  int      `json:"total_urls"`
}

// IngestFailure describes one detail document that could not be turned
// into a course record.
type IngestFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// IngestReport is the aggregate outcome of Stage 2. Partial success is a
// normal terminal state: both the successes and every enumerated failure
// are reported, never silently dropped.
type IngestReport struct {
	Courses      []*domain.Course `json:"courses"`
	SuccessCount int              `json:"success_count"`
	FailureCount int              `json:"failure_count"`
	Failures     []IngestFailure  `json:"failures"`
}

// IngestService drives the two-stage fetch-and-extract pipeline.
type IngestService interface {
	// ResolveListing performs Stage 1 only.
	ResolveListing(ctx context.Context, req IngestRequest) (*ListingResolution, error)

	// Ingest performs both stages and persists the assembled courses.
	Ingest(ctx context.Context, req IngestRequest) (*IngestReport, error)
}
