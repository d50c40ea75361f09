package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionsPerCredit is the number of class sessions one credit represents.
const SessionsPerCredit = 15

// EvaluationCriterion is one weighted component of a course's final grade.
type EvaluationCriterion struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Weight    int    `json:"weight"`
	MaxPoints int    `json:"max_points"`
}

// Course is the canonical record consumed by the rest of the application.
// It is constructed exclusively from a ValidatedSyllabus and never mutated
// by the extraction pipeline after creation.
type Course struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Instructor         string                `json:"instructor"`
	Credits            int                   `json:"credits"`
	ClassType          ClassType             `json:"class_type"`
	EvaluationCriteria []EvaluationCriterion `json:"evaluation_criteria"`
	Grades             []Grade               `json:"grades"`
	AbsenceCount       int                   `json:"absence_count"`
	AbsenceRecords     []AbsenceRecord       `json:"absence_records"`
	AbsenceCeiling     int                   `json:"absence_ceiling"`
	TotalSessions      int                   `json:"total_sessions"`
	Term               Term                  `json:"term"`
	AcademicYear       int                   `json:"academic_year"`
	Description        string                `json:"description,omitempty"`
	SourceURL          string                `json:"source_url,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// AbsenceCeiling returns the maximum tolerated missed-session count for a
// course of the given type and session total. Experiment courses tolerate
// only one tenth of sessions missed (rounded up); all other types tolerate
// a third (rounded down).
func AbsenceCeiling(classType ClassType, totalSessions int) int {
	if classType == ClassTypeExperiment {
		// ceil(total/10)
		return (totalSessions + 9) / 10
	}
	return totalSessions / 3
}

// AssembleCourse builds a Course from a validated syllabus record.
// Assembly is total: it has no failure modes. Every evaluation criterion is
// assigned a synthetic identifier and a 100-point scale; grade and absence
// histories start empty.
func AssembleCourse(v *ValidatedSyllabus, academicYear int) *Course {
	totalSessions := v.Credits * SessionsPerCredit

	criteria := make([]EvaluationCriterion, 0, len(v.EvaluationCriteria))
	for _, item := range v.EvaluationCriteria {
		criteria = append(criteria, EvaluationCriterion{
			ID:        uuid.NewString(),
			Name:      item.Name,
			Weight:    item.Percentage,
			MaxPoints: 100,
		})
	}

	now := time.Now()
	return &Course{
		ID:                 uuid.NewString(),
		Name:               v.SubjectName,
		Instructor:         v.Instructor,
		Credits:            v.Credits,
		ClassType:          v.ClassType,
		EvaluationCriteria: criteria,
		Grades:             []Grade{},
		AbsenceCount:       0,
		AbsenceRecords:     []AbsenceRecord{},
		AbsenceCeiling:     AbsenceCeiling(v.ClassType, totalSessions),
		TotalSessions:      totalSessions,
		Term:               v.Term,
		AcademicYear:       academicYear,
		Description:        v.Description,
		SourceURL:          v.SourceURL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
