package domain

import (
	"errors"
	"strings"
	"testing"
)

func validCandidate() CandidateSyllabus {
	return CandidateSyllabus{
		SubjectName: "Applied Thermodynamics",
		Instructor:  "Tanaka",
		Credits:     2,
		Term:        TermSpring,
		ClassType:   ClassTypeLecture,
		EvaluationCriteria: []EvaluationItem{
			{Name: "exam", Percentage: 80},
			{Name: "report", Percentage: 20},
		},
		SourceURL: "https://example.test/syllabus/detail?subject_id=0001",
	}
}

func TestValidatePromotesValidCandidate(t *testing.T) {
	v, warnings, err := validCandidate().Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if v.SubjectName != "Applied Thermodynamics" {
		t.Errorf("expected subject name preserved, got %q", v.SubjectName)
	}
	if sum := WeightSum(v.EvaluationCriteria); sum != 100 {
		t.Errorf("expected weights to sum to 100, got %d", sum)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	c := CandidateSyllabus{Credits: 0, Term: "winter", ClassType: "lab"}

	_, _, err := c.Validate()
	if err == nil {
		t.Fatal("expected error for empty candidate")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	// name, instructor, credits, term, class type, evaluation criteria
	if len(verr.Messages) != 6 {
		t.Errorf("expected 6 accumulated errors, got %d: %v", len(verr.Messages), verr.Messages)
	}
}

func TestValidateCreditsRange(t *testing.T) {
	for _, credits := range []int{0, 11, -1} {
		c := validCandidate()
		c.Credits = credits

		_, _, err := c.Validate()
		if err == nil {
			t.Errorf("credits=%d: expected error", credits)
			continue
		}
		if !strings.Contains(err.Error(), "credits") {
			t.Errorf("credits=%d: error %q does not mention credits", credits, err)
		}
	}

	for _, credits := range []int{1, 10} {
		c := validCandidate()
		c.Credits = credits
		if _, _, err := c.Validate(); err != nil {
			t.Errorf("credits=%d: unexpected error %v", credits, err)
		}
	}
}

func TestValidateWeightTolerance(t *testing.T) {
	tests := []struct {
		sum   int
		valid bool
	}{
		{98, true},
		{102, true},
		{97, false},
		{103, false},
	}

	for _, tt := range tests {
		c := validCandidate()
		c.EvaluationCriteria = []EvaluationItem{
			{Name: "exam", Percentage: tt.sum - 20},
			{Name: "report", Percentage: 20},
		}

		v, warnings, err := c.Validate()
		if tt.valid {
			if err != nil {
				t.Errorf("sum=%d: unexpected error %v", tt.sum, err)
				continue
			}
			if got := WeightSum(v.EvaluationCriteria); got != 100 {
				t.Errorf("sum=%d: normalized sum = %d, want 100", tt.sum, got)
			}
			if tt.sum != 100 && len(warnings) == 0 {
				t.Errorf("sum=%d: expected normalization warning", tt.sum)
			}
		} else if err == nil {
			t.Errorf("sum=%d: expected validation error", tt.sum)
		}
	}
}

func TestValidateEmptyCriteria(t *testing.T) {
	c := validCandidate()
	c.EvaluationCriteria = nil

	_, _, err := c.Validate()
	if err == nil {
		t.Fatal("expected error for empty evaluation criteria")
	}
	if !strings.Contains(err.Error(), "evaluation criteria") {
		t.Errorf("error %q does not mention evaluation criteria", err)
	}
}
