package domain

import "fmt"

// Term identifies the offering period of a course.
type Term string

const (
	TermSpring Term = "spring"
	TermFall   Term = "fall"
	TermBoth   Term = "both"
)

// Valid reports whether the term is one of the allowed literals.
func (t Term) Valid() bool {
	switch t {
	case TermSpring, TermFall, TermBoth:
		return true
	}
	return false
}

// ClassType identifies the teaching format of a course.
type ClassType string

const (
	ClassTypeLecture    ClassType = "lecture"
	ClassTypePractical  ClassType = "practical"
	ClassTypeExperiment ClassType = "experiment"
)

// Valid reports whether the class type is one of the allowed literals.
func (c ClassType) Valid() bool {
	switch c {
	case ClassTypeLecture, ClassTypePractical, ClassTypeExperiment:
		return true
	}
	return false
}

const (
	// MinCredits and MaxCredits bound the accepted credit count.
	MinCredits = 1
	MaxCredits = 10
)

// CandidateSyllabus is the untrusted output of field extraction.
// Every field may be absent (zero value) or low-confidence; nothing may be
// treated as trustworthy before Validate promotes it.
type CandidateSyllabus struct {
	SubjectName        string           `json:"subject_name"`
	Instructor         string           `json:"instructor"`
	Credits            int              `json:"credits"`
	Term               Term             `json:"term"`
	ClassType          ClassType        `json:"class_type"`
	EvaluationCriteria []EvaluationItem `json:"evaluation_criteria"`
	Description        string           `json:"description,omitempty"`
	SourceURL          string           `json:"source_url"`
}

// ValidatedSyllabus has the candidate shape with every required field
// guaranteed present, in range, and evaluation weights summing to exactly
// 100. Immutable once created.
type ValidatedSyllabus struct {
	SubjectName        string
	Instructor         string
	Credits            int
	Term               Term
	ClassType          ClassType
	EvaluationCriteria []EvaluationItem
	Description        string
	SourceURL          string
}

// Validate checks every business rule and either promotes the candidate to
// a ValidatedSyllabus or returns a *ValidationError listing all violated
// rules. Rules do not short-circuit: the error aggregates every failure.
//
// Evaluation weights summing within ±2 of 100 are accepted; when not
// exactly 100 the validated record carries the normalized weights and a
// warning is returned alongside it.
func (c CandidateSyllabus) Validate() (*ValidatedSyllabus, []string, error) {
	var errs []string
	var warnings []string

	if c.SubjectName == "" {
		errs = append(errs, "subject name must not be empty")
	}
	if c.Instructor == "" {
		errs = append(errs, "instructor must not be empty")
	}
	if c.Credits < MinCredits || c.Credits > MaxCredits {
		errs = append(errs, fmt.Sprintf("credits must be between %d and %d, got %d", MinCredits, MaxCredits, c.Credits))
	}
	if !c.Term.Valid() {
		errs = append(errs, fmt.Sprintf("term %q is not one of spring, fall, both", string(c.Term)))
	}
	if !c.ClassType.Valid() {
		errs = append(errs, fmt.Sprintf("class type %q is not one of lecture, practical, experiment", string(c.ClassType)))
	}

	criteria := c.EvaluationCriteria
	if len(criteria) == 0 {
		errs = append(errs, "evaluation criteria must not be empty")
	} else if !ValidWeightSum(criteria) {
		errs = append(errs, fmt.Sprintf("evaluation weights sum to %d, expected 100 (±2)", WeightSum(criteria)))
	} else if sum := WeightSum(criteria); sum != 100 {
		criteria = NormalizeWeights(criteria)
		warnings = append(warnings, fmt.Sprintf("evaluation weights summed to %d and were normalized to 100", sum))
	}

	if len(errs) > 0 {
		return nil, nil, &ValidationError{Messages: errs}
	}

	return &ValidatedSyllabus{
		SubjectName:        c.SubjectName,
		Instructor:         c.Instructor,
		Credits:            c.Credits,
		Term:               c.Term,
		ClassType:          c.ClassType,
		EvaluationCriteria: criteria,
		Description:        c.Description,
		SourceURL:          c.SourceURL,
	}, warnings, nil
}
