package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/unitrack-labs/syllabus-core/internal/batch"
	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
	"github.com/unitrack-labs/syllabus-core/internal/extract"
)

// Verify interface compliance
var _ driving.IngestService = (*Ingestor)(nil)

// minDocumentRunes is the plausibility floor for a fetched detail page.
// Anything shorter is treated as an empty document.
const minDocumentRunes = 50

// Ingestor coordinates the two-stage fetch-and-extract pipeline:
//
//	Stage 1: resolve the department listing page to detail document URLs.
//	Stage 2: fetch each document with bounded concurrency and run it
//	         through extraction, validation and assembly.
//
// Stage-1 failures abort the invocation; Stage-2 failures are isolated per
// document, and the invocation only fails when every document failed.
// There is no mid-flight cancellation beyond the context handed to each
// individual fetch.
type Ingestor struct {
	scraper   driven.PageScraper
	store     driven.CourseStore
	cache     driven.Cache
	bus       driven.EventBus
	catalog   *Catalog
	extractor *extract.Extractor
	logger    *slog.Logger

	chunkSize  int
	chunkDelay time.Duration
	cacheTTL   time.Duration
}

// IngestorConfig holds dependencies for the Ingestor.
type IngestorConfig struct {
	Scraper   driven.PageScraper
	Store     driven.CourseStore
	Cache     driven.Cache // optional
	Bus       driven.EventBus
	Catalog   *Catalog
	Extractor *extract.Extractor
	Logger    *slog.Logger

	ChunkSize  int           // default 2
	ChunkDelay time.Duration // default 500ms
	CacheTTL   time.Duration // default 10m
}

// NewIngestor creates an Ingestor.
func NewIngestor(cfg IngestorConfig) *Ingestor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = batch.DefaultChunkSize
	}
	chunkDelay := cfg.ChunkDelay
	if chunkDelay == 0 {
		chunkDelay = batch.DefaultDelay
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	extractor := cfg.Extractor
	if extractor == nil {
		extractor = extract.NewExtractor(logger)
	}

	return &Ingestor{
		scraper:    cfg.Scraper,
		store:      cfg.Store,
		cache:      cfg.Cache,
		bus:        cfg.Bus,
		catalog:    cfg.Catalog,
		extractor:  extractor,
		logger:     logger,
		chunkSize:  chunkSize,
		chunkDelay: chunkDelay,
		cacheTTL:   cacheTTL,
	}
}

// ResolveListing performs Stage 1: one request for the listing page's
// outbound links, filtered down to detail documents for the requested
// department. Resolutions are cached under the composite request key.
func (i *Ingestor) ResolveListing(ctx context.Context, req driving.IngestRequest) (*driving.ListingResolution, error) {
	listingURL, err := i.catalog.ListingURL(req)
	if err != nil {
		return nil, err
	}

	if cached := i.cachedResolution(ctx, req, listingURL); cached != nil {
		return cached, nil
	}

	links, err := i.scraper.Links(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("resolve listing %s: %w", listingURL, err)
	}

	urls := i.catalog.FilterDetailLinks(req, links)
	if len(urls) == 0 {
		// Name the listing URL and the raw link count so "the collaborator
		// returned nothing" is distinguishable from "links came back but
		// none matched".
		return nil, fmt.Errorf("%w: listing %s yielded %d raw links, none matched department %s",
			domain.ErrNoListingURLs, listingURL, len(links), req.DepartmentID)
	}

	i.cacheResolution(ctx, req, urls)

	return &driving.ListingResolution{
		ListingURL: listingURL,
		URLs:       urls,
		TotalURLs:  len(urls),
	}, nil
}

// Ingest runs both stages, persists the assembled courses, and publishes
// completion events. Partial success is a normal terminal state.
func (i *Ingestor) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestReport, error) {
	startTime := time.Now()
	logger := i.logger.With(
		"institution_id", req.InstitutionID,
		"department_id", req.DepartmentID,
		"academic_year", req.AcademicYear,
	)
	logger.Info("starting ingest")

	resolution, err := i.ResolveListing(ctx, req)
	if err != nil {
		logger.Error("listing resolution failed", "error", err)
		return nil, err
	}
	logger.Info("listing resolved", "urls", resolution.TotalURLs)

	type ingested struct {
		course   *domain.Course
		warnings []string
	}

	result := batch.Run(ctx, resolution.URLs,
		func(ctx context.Context, url string, _, _ int) (ingested, error) {
			course, warnings, err := i.processDocument(ctx, url, req)
			if err != nil {
				return ingested{}, err
			}
			return ingested{course: course, warnings: warnings}, nil
		},
		batch.Options{
			ChunkSize: i.chunkSize,
			Delay:     i.chunkDelay,
			OnProgress: func(completed, total int) {
				logger.Debug("ingest progress", "completed", completed, "total", total)
			},
			OnError: func(err error, index int) {
				logger.Warn("document ingest failed", "url", resolution.URLs[index], "error", err)
			},
		},
	)

	if len(result.Successful) == 0 {
		return nil, fmt.Errorf("%w: attempted %d urls from %s",
			domain.ErrAllFetchesFailed, len(resolution.URLs), resolution.ListingURL)
	}

	courses := make([]*domain.Course, 0, len(result.Successful))
	for _, s := range result.Successful {
		courses = append(courses, s.course)
	}

	if err := i.store.SaveAll(ctx, courses); err != nil {
		return nil, fmt.Errorf("save courses: %w", err)
	}

	for _, s := range result.Successful {
		i.publish(ctx, domain.TopicCourseIngested, domain.CourseIngestedEvent{
			CourseID:  s.course.ID,
			Name:      s.course.Name,
			SourceURL: s.course.SourceURL,
			Warnings:  s.warnings,
		})
	}

	report := &driving.IngestReport{
		Courses:      courses,
		SuccessCount: len(courses),
		FailureCount: len(result.Failed),
		Failures:     make([]driving.IngestFailure, 0, len(result.Failed)),
	}
	for _, f := range result.Failed {
		report.Failures = append(report.Failures, driving.IngestFailure{
			URL:    f.Item,
			Reason: f.Err.Error(),
		})
	}

	i.publish(ctx, domain.TopicIngestCompleted, domain.IngestCompletedEvent{
		InstitutionID: req.InstitutionID,
		DepartmentID:  req.DepartmentID,
		AcademicYear:  req.AcademicYear,
		SuccessCount:  report.SuccessCount,
		FailureCount:  report.FailureCount,
	})

	logger.Info("ingest completed",
		"duration_seconds", time.Since(startTime).Seconds(),
		"succeeded", report.SuccessCount,
		"failed", report.FailureCount,
	)

	return report, nil
}

// processDocument fetches one detail document and threads it through
// extraction, validation and assembly.
func (i *Ingestor) processDocument(ctx context.Context, url string, req driving.IngestRequest) (*domain.Course, []string, error) {
	markdown, err := i.scraper.Markdown(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(markdown)) < minDocumentRunes {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, url)
	}

	candidate := i.extractor.Extract(extract.RawDocument{URL: url, Text: markdown})
	validated, warnings, err := candidate.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", url, err)
	}

	return domain.AssembleCourse(validated, req.AcademicYear), warnings, nil
}

func (i *Ingestor) cachedResolution(ctx context.Context, req driving.IngestRequest, listingURL string) *driving.ListingResolution {
	if i.cache == nil {
		return nil
	}

	data, ok, err := i.cache.Get(ctx, req.CacheKey())
	if err != nil {
		i.logger.Warn("cache read failed", "key", req.CacheKey(), "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil || len(urls) == 0 {
		return nil
	}

	return &driving.ListingResolution{
		ListingURL: listingURL,
		URLs:       urls,
		TotalURLs:  len(urls),
	}
}

func (i *Ingestor) cacheResolution(ctx context.Context, req driving.IngestRequest, urls []string) {
	if i.cache == nil {
		return
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return
	}
	if err := i.cache.Put(ctx, req.CacheKey(), data, i.cacheTTL); err != nil {
		i.logger.Warn("cache write failed", "key", req.CacheKey(), "error", err)
	}
}

// publish sends an event best-effort; delivery failures are logged, never
// propagated into the pipeline result.
func (i *Ingestor) publish(ctx context.Context, topic string, payload any) {
	if i.bus == nil {
		return
	}
	if err := i.bus.Publish(ctx, topic, payload); err != nil {
		i.logger.Warn("event publish failed", "topic", topic, "error", err)
	}
}
