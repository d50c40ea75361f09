// Package extract pulls typed syllabus fields out of raw, semi-structured
// document text. Each field has its own ordered cascade of matching
// strategies, oldest and most specific document format first, falling back
// to a safe default. Extractors never fail: malformed input degrades to the
// default value, and every fallback is logged as a low-confidence signal.
//
// Documents are bilingual (Japanese and English labels appear in the wild);
// every cascade matches both.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// RawDocument is an opaque markdown-derived text blob plus its source URL.
// It exists only for the duration of one fetch-and-extract call.
type RawDocument struct {
	URL  string
	Text string
}

// Extractor runs every field cascade over a document and assembles the
// untrusted candidate record. Fallback hits are logged at warn level so
// low-confidence extractions are distinguishable in telemetry.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract produces a candidate syllabus record from a raw document.
// Every field is best-effort; the validator is the trust boundary.
func (e *Extractor) Extract(doc RawDocument) domain.CandidateSyllabus {
	logger := e.logger.With("url", doc.URL)

	title := Title(doc.Text, doc.URL)
	if title == UnknownTitle {
		logger.Warn("extraction fell back to default", "field", "title")
	}

	instructor := Instructor(doc.Text)
	if instructor == UnspecifiedInstructor {
		logger.Warn("extraction fell back to default", "field", "instructor")
	}

	credits, matched := Credits(doc.Text)
	if !matched {
		logger.Warn("extraction fell back to default", "field", "credits", "default", credits)
	}

	items, confident := Evaluation(doc.Text)
	if !confident {
		// Downstream grade arithmetic depends on these weights; a default
		// here must never look like a high-confidence extraction.
		logger.Warn("extraction fell back to default", "field", "evaluation_criteria")
	}

	return domain.CandidateSyllabus{
		SubjectName:        title,
		Instructor:         instructor,
		Credits:            credits,
		Term:               TermOf(doc.Text),
		ClassType:          ClassTypeOf(doc.Text, title),
		EvaluationCriteria: items,
		Description:        Description(doc.Text),
		SourceURL:          doc.URL,
	}
}

// tableRow finds the first pipe-delimited table row whose label cell
// matches one of labels and returns the cell immediately after it.
// Trailing cell delimiters are tolerated.
func tableRow(text string, labels ...string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Count(line, "|") < 2 {
			continue
		}
		cells := splitRow(line)
		for i, cell := range cells {
			if i+1 >= len(cells) || !cellMatches(cell, labels) {
				continue
			}
			if value := strings.TrimSpace(cells[i+1]); value != "" {
				return value
			}
		}
	}
	return ""
}

// splitRow splits a markdown table line into trimmed cells, preserving
// empty cells in the middle of the row.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func cellMatches(cell string, labels []string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return false
	}
	for _, label := range labels {
		if strings.Contains(cell, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

// labeledValue matches a colon-separated "label: value" line, tolerating
// full-width colons and bolded labels.
func labeledValue(text string, labels ...string) string {
	for _, label := range labels {
		re := regexp.MustCompile(`(?im)^\s*(?:\*\*)?\s*` + regexp.QuoteMeta(label) + `\s*(?:\*\*)?\s*[:：]\s*(.+)$`)
		if m := re.FindStringSubmatch(text); m != nil {
			value := strings.TrimSpace(m[1])
			// Strip trailing table-cell delimiters from malformed rows.
			value = strings.TrimSpace(strings.TrimRight(value, "|"))
			if value != "" {
				return value
			}
		}
	}
	return ""
}

func containsAny(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
