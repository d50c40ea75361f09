// Package worker re-runs the ingest pipeline on a fixed interval so stored
// course records track their source syllabi.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
)

// Target identifies one department catalog the worker keeps fresh.
type Target = driving.IngestRequest

// ParseTargets parses a comma-separated list of reingest targets of the
// form "institution:department:grade:year".
func ParseTargets(spec string) ([]Target, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var targets []Target
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed target %q: want institution:department:grade:year", entry)
		}

		grade, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("malformed target %q: grade: %w", entry, err)
		}
		year, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("malformed target %q: year: %w", entry, err)
		}

		targets = append(targets, Target{
			InstitutionID: strings.TrimSpace(parts[0]),
			DepartmentID:  strings.TrimSpace(parts[1]),
			GradeLevel:    grade,
			AcademicYear:  year,
		})
	}
	return targets, nil
}

// Worker periodically re-ingests a fixed set of targets.
type Worker struct {
	ingest   driving.IngestService
	targets  []Target
	interval time.Duration
	logger   *slog.Logger

	// Internal state
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	Ingest   driving.IngestService
	Targets  []Target
	Interval time.Duration // default 6h
	Logger   *slog.Logger
}

// New creates a worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Worker{
		ingest:   cfg.Ingest,
		targets:  cfg.Targets,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the reingest loop. The first pass runs immediately; later
// passes run every interval. It returns at once; use Stop or cancel ctx to
// halt the loop.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"targets", len(w.targets),
		"interval", w.interval.String(),
	)

	go func() {
		defer close(w.doneCh)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runPass(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			case <-ticker.C:
				w.runPass(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Info("worker stopped")
}

// runPass ingests every target once. Failures are logged and do not stop
// the pass; a department that fails this round is retried next round.
func (w *Worker) runPass(ctx context.Context) {
	for _, target := range w.targets {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		default:
		}

		report, err := w.ingest.Ingest(ctx, target)
		if err != nil {
			w.logger.Error("reingest failed",
				"institution_id", target.InstitutionID,
				"department_id", target.DepartmentID,
				"error", err,
			)
			continue
		}
		w.logger.Info("reingest pass completed",
			"institution_id", target.InstitutionID,
			"department_id", target.DepartmentID,
			"succeeded", report.SuccessCount,
			"failed", report.FailureCount,
		)
	}
}
