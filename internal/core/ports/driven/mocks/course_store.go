package mocks

import (
	"context"
	"sync"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Ensure MockCourseStore implements CourseStore
var _ driven.CourseStore = (*MockCourseStore)(nil)

// MockCourseStore is an in-memory CourseStore for testing. Insertion order
// is preserved by List.
type MockCourseStore struct {
	mu      sync.Mutex
	courses map[string]*domain.Course
	order   []string

	// SaveErr, when set, is returned by Save and SaveAll.
	SaveErr error
}

// NewMockCourseStore creates an empty MockCourseStore.
func NewMockCourseStore() *MockCourseStore {
	return &MockCourseStore{courses: make(map[string]*domain.Course)}
}

// List returns all stored courses in insertion order.
func (m *MockCourseStore) List(_ context.Context) ([]*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Course, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.courses[id])
	}
	return out, nil
}

// Get returns the course with the given ID or domain.ErrNotFound.
func (m *MockCourseStore) Get(_ context.Context, id string) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	course, ok := m.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return course, nil
}

// Save stores one course.
func (m *MockCourseStore) Save(_ context.Context, course *domain.Course) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(course)
	return nil
}

// SaveAll stores every course.
func (m *MockCourseStore) SaveAll(_ context.Context, courses []*domain.Course) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range courses {
		m.put(c)
	}
	return nil
}

// Delete removes a course or returns domain.ErrNotFound.
func (m *MockCourseStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.courses, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockCourseStore) put(course *domain.Course) {
	if _, ok := m.courses[course.ID]; !ok {
		m.order = append(m.order, course.ID)
	}
	m.courses[course.ID] = course
}
