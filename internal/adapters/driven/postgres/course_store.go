package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CourseStore = (*CourseStore)(nil)

// CourseStore implements driven.CourseStore using PostgreSQL. The full
// course record is stored as a JSONB payload; a few columns are lifted out
// for indexing and ordering.
type CourseStore struct {
	db *DB
}

// NewCourseStore creates a new CourseStore
func NewCourseStore(db *DB) *CourseStore {
	return &CourseStore{db: db}
}

const upsertCourseQuery = `
	INSERT INTO courses (id, name, academic_year, term, source_url, payload, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		academic_year = EXCLUDED.academic_year,
		term = EXCLUDED.term,
		source_url = EXCLUDED.source_url,
		payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at
`

// Save creates or updates a course
func (s *CourseStore) Save(ctx context.Context, course *domain.Course) error {
	payload, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("marshal course %s: %w", course.ID, err)
	}

	_, err = s.db.ExecContext(ctx, upsertCourseQuery,
		course.ID,
		course.Name,
		course.AcademicYear,
		string(course.Term),
		course.SourceURL,
		payload,
		course.CreatedAt,
		course.UpdatedAt,
	)
	return err
}

// SaveAll stores every course in one transaction.
func (s *CourseStore) SaveAll(ctx context.Context, courses []*domain.Course) error {
	if len(courses) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertCourseQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, course := range courses {
			payload, err := json.Marshal(course)
			if err != nil {
				return fmt.Errorf("marshal course %s: %w", course.ID, err)
			}
			if _, err := stmt.ExecContext(ctx,
				course.ID,
				course.Name,
				course.AcademicYear,
				string(course.Term),
				course.SourceURL,
				payload,
				course.CreatedAt,
				course.UpdatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a course by ID
func (s *CourseStore) Get(ctx context.Context, id string) (*domain.Course, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM courses WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: course %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return unmarshalCourse(payload)
}

// List returns all courses ordered by creation time.
func (s *CourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM courses ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		course, err := unmarshalCourse(payload)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// Delete removes a course by ID
func (s *CourseStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: course %s", domain.ErrNotFound, id)
	}
	return nil
}

func unmarshalCourse(payload []byte) (*domain.Course, error) {
	var course domain.Course
	if err := json.Unmarshal(payload, &course); err != nil {
		return nil, fmt.Errorf("unmarshal course payload: %w", err)
	}
	return &course, nil
}
