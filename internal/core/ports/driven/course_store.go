package driven

import (
	"context"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// CourseStore persists assembled course records, keyed by course ID.
// The extraction pipeline only ever hands records over; ownership moves to
// the store once SaveAll returns.
type CourseStore interface {
	List(ctx context.Context) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Save(ctx context.Context, course *domain.Course) error
	SaveAll(ctx context.Context, courses []*domain.Course) error
	Delete(ctx context.Context, id string) error
}
