package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven/mocks"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
)

func storedCourse(t *testing.T, store *mocks.MockCourseStore) *domain.Course {
	t.Helper()

	course := domain.AssembleCourse(&domain.ValidatedSyllabus{
		SubjectName: "応用数学",
		Instructor:  "山田 太郎",
		Credits:     2,
		Term:        domain.TermSpring,
		ClassType:   domain.ClassTypeLecture,
		EvaluationCriteria: []domain.EvaluationItem{
			{Name: "試験", Percentage: 60},
			{Name: "レポート", Percentage: 40},
		},
	}, 2026)
	require.NoError(t, store.Save(context.Background(), course))
	return course
}

func TestCoursesRecordGrade(t *testing.T) {
	store := mocks.NewMockCourseStore()
	course := storedCourse(t, store)
	svc := NewCourses(store, nil)

	updated, err := svc.RecordGrade(context.Background(), course.ID, driving.RecordGradeRequest{
		CriterionID: course.EvaluationCriteria[0].ID,
		Name:        "中間試験",
		Score:       85,
		MaxScore:    100,
	})
	require.NoError(t, err)
	require.Len(t, updated.Grades, 1)
	assert.Equal(t, "中間試験", updated.Grades[0].Name)
	assert.InDelta(t, 51.0, updated.WeightedScore(), 0.001)
}

func TestCoursesRecordGradeUnknownCriterion(t *testing.T) {
	store := mocks.NewMockCourseStore()
	course := storedCourse(t, store)
	svc := NewCourses(store, nil)

	_, err := svc.RecordGrade(context.Background(), course.ID, driving.RecordGradeRequest{
		CriterionID: "no-such-criterion",
		Name:        "中間試験",
		Score:       85,
		MaxScore:    100,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCoursesRecordGradeUnknownCourse(t *testing.T) {
	svc := NewCourses(mocks.NewMockCourseStore(), nil)

	_, err := svc.RecordGrade(context.Background(), "missing", driving.RecordGradeRequest{
		CriterionID: "x",
		Name:        "quiz",
		Score:       1,
		MaxScore:    10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCoursesRecordAbsence(t *testing.T) {
	store := mocks.NewMockCourseStore()
	course := storedCourse(t, store)
	svc := NewCourses(store, nil)

	updated, err := svc.RecordAbsence(context.Background(), course.ID, driving.RecordAbsenceRequest{
		Date:   "2026-05-12",
		Reason: "illness",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AbsenceCount)
	require.Len(t, updated.AbsenceRecords, 1)
	assert.Equal(t, "2026-05-12", updated.AbsenceRecords[0].Date)
}

func TestCoursesDelete(t *testing.T) {
	store := mocks.NewMockCourseStore()
	course := storedCourse(t, store)
	svc := NewCourses(store, nil)

	require.NoError(t, svc.Delete(context.Background(), course.ID))

	_, err := svc.Get(context.Background(), course.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCoursesListEmpty(t *testing.T) {
	svc := NewCourses(mocks.NewMockCourseStore(), nil)

	courses, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}
