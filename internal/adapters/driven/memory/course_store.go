package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CourseStore = (*CourseStore)(nil)

// CourseStore is a process-local CourseStore. It backs the CLI and any
// deployment that does not need persistence.
type CourseStore struct {
	mu      sync.RWMutex
	courses map[string]*domain.Course
	order   []string
}

// NewCourseStore creates an empty CourseStore.
func NewCourseStore() *CourseStore {
	return &CourseStore{courses: make(map[string]*domain.Course)}
}

// List returns all stored courses in insertion order.
func (s *CourseStore) List(_ context.Context) ([]*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Course, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.courses[id])
	}
	return out, nil
}

// Get returns one course by ID.
func (s *CourseStore) Get(_ context.Context, id string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: course %s", domain.ErrNotFound, id)
	}
	return course, nil
}

// Save stores one course.
func (s *CourseStore) Save(_ context.Context, course *domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(course)
	return nil
}

// SaveAll stores every course.
func (s *CourseStore) SaveAll(_ context.Context, courses []*domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, course := range courses {
		s.put(course)
	}
	return nil
}

// Delete removes one course by ID.
func (s *CourseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return fmt.Errorf("%w: course %s", domain.ErrNotFound, id)
	}
	delete(s.courses, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *CourseStore) put(course *domain.Course) {
	if _, ok := s.courses[course.ID]; !ok {
		s.order = append(s.order, course.ID)
	}
	s.courses[course.ID] = course
}
