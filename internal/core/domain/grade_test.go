package domain

import (
	"math"
	"testing"
)

func courseWithCriteria() *Course {
	v := &ValidatedSyllabus{
		SubjectName: "Signal Processing",
		Instructor:  "Yamada",
		Credits:     2,
		Term:        TermSpring,
		ClassType:   ClassTypeLecture,
		EvaluationCriteria: []EvaluationItem{
			{Name: "exam", Percentage: 70},
			{Name: "report", Percentage: 30},
		},
	}
	return AssembleCourse(v, 2026)
}

func TestWeightedScore(t *testing.T) {
	c := courseWithCriteria()
	examID := c.EvaluationCriteria[0].ID
	reportID := c.EvaluationCriteria[1].ID

	if got := c.WeightedScore(); got != 0 {
		t.Errorf("empty course WeightedScore = %f, want 0", got)
	}

	c.RecordGrade(examID, "final", 80, 100)
	// 0.8 * 70 = 56
	if got := c.WeightedScore(); math.Abs(got-56) > 1e-9 {
		t.Errorf("WeightedScore = %f, want 56", got)
	}

	c.RecordGrade(reportID, "report 1", 9, 10)
	// 56 + 0.9*30 = 83
	if got := c.WeightedScore(); math.Abs(got-83) > 1e-9 {
		t.Errorf("WeightedScore = %f, want 83", got)
	}

	// Second exam grade averages with the first: (0.8+0.6)/2 * 70 = 49
	c.RecordGrade(examID, "retake", 60, 100)
	if got := c.WeightedScore(); math.Abs(got-(49+27)) > 1e-9 {
		t.Errorf("WeightedScore = %f, want 76", got)
	}
}

func TestRemainingWeight(t *testing.T) {
	c := courseWithCriteria()
	if got := c.RemainingWeight(); got != 100 {
		t.Errorf("RemainingWeight = %d, want 100", got)
	}

	c.RecordGrade(c.EvaluationCriteria[0].ID, "final", 50, 100)
	if got := c.RemainingWeight(); got != 30 {
		t.Errorf("RemainingWeight = %d, want 30", got)
	}
}

func TestAbsenceFailure(t *testing.T) {
	c := courseWithCriteria() // lecture, ceiling 10

	for i := 0; i < c.AbsenceCeiling; i++ {
		c.RecordAbsence("2026-04-01", "")
	}

	// At the ceiling: at risk but not failed. The strictly-greater-than
	// reading of the institutional rule is deliberate.
	if c.FailedByAbsence() {
		t.Errorf("at ceiling (%d absences): should not have failed yet", c.AbsenceCount)
	}
	if !c.AtRiskOfAbsenceFailure() {
		t.Errorf("at ceiling (%d absences): should be at risk", c.AbsenceCount)
	}

	c.RecordAbsence("2026-04-08", "overslept")
	if !c.FailedByAbsence() {
		t.Errorf("over ceiling (%d absences): should have failed", c.AbsenceCount)
	}
}

func TestRecordGradeAndAbsenceBookkeeping(t *testing.T) {
	c := courseWithCriteria()

	g := c.RecordGrade(c.EvaluationCriteria[0].ID, "quiz", 7, 10)
	if g.ID == "" {
		t.Error("expected generated grade ID")
	}
	if len(c.Grades) != 1 {
		t.Errorf("expected 1 grade, got %d", len(c.Grades))
	}

	a := c.RecordAbsence("2026-05-12", "sick")
	if a.ID == "" {
		t.Error("expected generated absence ID")
	}
	if c.AbsenceCount != 1 || len(c.AbsenceRecords) != 1 {
		t.Errorf("absence bookkeeping off: count=%d records=%d", c.AbsenceCount, len(c.AbsenceRecords))
	}
}
