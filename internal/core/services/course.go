package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
)

// Verify interface compliance
var _ driving.CourseService = (*Courses)(nil)

// Courses serves stored course records and the grade and attendance
// bookkeeping layered on top of them.
type Courses struct {
	store  driven.CourseStore
	logger *slog.Logger
}

// NewCourses creates a Courses service.
func NewCourses(store driven.CourseStore, logger *slog.Logger) *Courses {
	if logger == nil {
		logger = slog.Default()
	}
	return &Courses{store: store, logger: logger}
}

// List returns all stored courses.
func (s *Courses) List(ctx context.Context) ([]*domain.Course, error) {
	return s.store.List(ctx)
}

// Get returns one course by ID.
func (s *Courses) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.store.Get(ctx, id)
}

// Delete removes one course by ID.
func (s *Courses) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("course deleted", "course_id", id)
	return nil
}

// RecordGrade appends a grade to the named criterion and persists the
// updated course. The criterion must exist on the course.
func (s *Courses) RecordGrade(ctx context.Context, courseID string, req driving.RecordGradeRequest) (*domain.Course, error) {
	course, err := s.store.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !hasCriterion(course, req.CriterionID) {
		return nil, fmt.Errorf("%w: criterion %s on course %s", domain.ErrNotFound, req.CriterionID, courseID)
	}

	course.RecordGrade(req.CriterionID, req.Name, req.Score, req.MaxScore)
	if err := s.store.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("save course %s: %w", courseID, err)
	}
	return course, nil
}

// RecordAbsence appends an absence record and persists the updated course.
func (s *Courses) RecordAbsence(ctx context.Context, courseID string, req driving.RecordAbsenceRequest) (*domain.Course, error) {
	course, err := s.store.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.RecordAbsence(req.Date, req.Reason)
	if err := s.store.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("save course %s: %w", courseID, err)
	}

	if course.FailedByAbsence() {
		s.logger.Warn("absence ceiling exceeded",
			"course_id", course.ID,
			"absences", course.AbsenceCount,
			"ceiling", course.AbsenceCeiling,
		)
	}
	return course, nil
}

func hasCriterion(course *domain.Course, criterionID string) bool {
	for _, crit := range course.EvaluationCriteria {
		if crit.ID == criterionID {
			return true
		}
	}
	return false
}
