package driving

import (
	"context"
	"fmt"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// RecordGradeRequest records one scored piece of work on a course.
type RecordGradeRequest struct {
	CriterionID string  `json:"criterion_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Score       float64 `json:"score" validate:"min=0"`
	MaxScore    float64 `json:"max_score" validate:"gt=0"`
}

// RecordAbsenceRequest records one missed session on a course.
type RecordAbsenceRequest struct {
	Date   string `json:"date" validate:"required"`
	Reason string `json:"reason"`
}

// CourseService exposes the stored course records and the grade/attendance
// bookkeeping built on top of them.
type CourseService interface {
	List(ctx context.Context) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
	RecordGrade(ctx context.Context, courseID string, req RecordGradeRequest) (*domain.Course, error)
	RecordAbsence(ctx context.Context, courseID string, req RecordAbsenceRequest) (*domain.Course, error)
}

func joinKey(institutionID, departmentID string, gradeLevel, academicYear int) string {
	return fmt.Sprintf("%s_%s_%d_%d", institutionID, departmentID, gradeLevel, academicYear)
}
