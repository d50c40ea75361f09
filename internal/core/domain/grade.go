package domain

import (
	"time"

	"github.com/google/uuid"
)

// Grade is one scored piece of work recorded against a course criterion.
type Grade struct {
	ID          string    `json:"id"`
	CriterionID string    `json:"criterion_id"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// AbsenceRecord is one missed session.
type AbsenceRecord struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Reason     string    `json:"reason,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordGrade appends a grade and returns it.
func (c *Course) RecordGrade(criterionID, name string, score, maxScore float64) Grade {
	g := Grade{
		ID:          uuid.NewString(),
		CriterionID: criterionID,
		Name:        name,
		Score:       score,
		MaxScore:    maxScore,
		RecordedAt:  time.Now(),
	}
	c.Grades = append(c.Grades, g)
	c.UpdatedAt = g.RecordedAt
	return g
}

// RecordAbsence appends an absence record and bumps the counter.
func (c *Course) RecordAbsence(date, reason string) AbsenceRecord {
	a := AbsenceRecord{
		ID:         uuid.NewString(),
		Date:       date,
		Reason:     reason,
		RecordedAt: time.Now(),
	}
	c.AbsenceRecords = append(c.AbsenceRecords, a)
	c.AbsenceCount++
	c.UpdatedAt = a.RecordedAt
	return a
}

// WeightedScore returns the current weighted total out of 100, counting
// only criteria that have at least one grade. Multiple grades on one
// criterion contribute their average ratio.
func (c *Course) WeightedScore() float64 {
	total := 0.0
	for _, crit := range c.EvaluationCriteria {
		ratioSum := 0.0
		n := 0
		for _, g := range c.Grades {
			if g.CriterionID != crit.ID || g.MaxScore <= 0 {
				continue
			}
			ratioSum += g.Score / g.MaxScore
			n++
		}
		if n > 0 {
			total += ratioSum / float64(n) * float64(crit.Weight)
		}
	}
	return total
}

// RemainingWeight returns the weight of criteria that have no grades yet,
// i.e. the best-case points still obtainable on top of WeightedScore.
func (c *Course) RemainingWeight() int {
	remaining := 0
	for _, crit := range c.EvaluationCriteria {
		graded := false
		for _, g := range c.Grades {
			if g.CriterionID == crit.ID {
				graded = true
				break
			}
		}
		if !graded {
			remaining += crit.Weight
		}
	}
	return remaining
}

// FailedByAbsence reports whether the absence count has exceeded the
// ceiling. The institutional rule is read as strictly-greater-than: a
// student sitting exactly at the ceiling has not yet failed.
func (c *Course) FailedByAbsence() bool {
	return c.AbsenceCount > c.AbsenceCeiling
}

// AtRiskOfAbsenceFailure reports whether one more absence would fail the
// course (the count has reached the ceiling).
func (c *Course) AtRiskOfAbsenceFailure() bool {
	return c.AbsenceCount >= c.AbsenceCeiling
}
