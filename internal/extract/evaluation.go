package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// categoryKeywords identify evaluation categories in headers and prose.
// Longer phrasings come first so the regex alternation prefers them.
var categoryKeywords = []string{
	"期末試験", "中間試験", "定期試験", "試験", "小テスト", "テスト",
	"レポート", "平常点", "課題", "発表", "出席", "その他",
	"examination", "exam", "final", "midterm",
	"report", "routine", "quiz", "assignment",
	"presentation", "participation", "attendance", "other",
}

// totalLabels mark the grand-total column, which is never an item.
var totalLabels = []string{"合計", "total"}

// valueRowLabels identify the table row holding the overall percentages.
var valueRowLabels = []string{"総合評価割合", "overall evaluation percentage", "評価割合"}

var evaluationHeadingRe = regexp.MustCompile(`(?m)^#{1,6}.*(?:成績評価|評価割合|evaluation).*$`)
var anyHeadingRe = regexp.MustCompile(`(?m)^#{1,6}\s`)

var gradingHeadingRe = regexp.MustCompile(`(?mi)^#{1,6}.*(?:成績評価方法|成績評価の方法|grading policy|grading).*$`)

var keywordAlternation = buildKeywordAlternation()

func buildKeywordAlternation() string {
	quoted := make([]string, len(categoryKeywords))
	for i, k := range categoryKeywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// annotatedRe matches "<category> ... (<integer>%)" tuples in prose.
var annotatedRe = regexp.MustCompile(`(?i)(` + keywordAlternation + `)[^()（）\n]{0,40}[（(](\d{1,3})\s*[%％][)）]`)

// inlineRe matches "<category><short gap><integer>%" anywhere.
var inlineRe = regexp.MustCompile(`(?i)(` + keywordAlternation + `)[^\n%％]{0,20}?(\d{1,3})\s*[%％]`)

// Evaluation extracts the named-percentage grade breakdown. Three ordered
// strategies are tried; the first non-empty plausible result wins:
//
//  1. an evaluation table pairing a category header row with the overall
//     percentage value row,
//  2. annotated "(NN%)" tuples inside the grading policy section,
//  3. generic inline "category ... NN%" matches across the document.
//
// When all three miss, the institutional default of exam 80 / report 20 is
// returned with confident=false so callers can surface the low-confidence
// signal.
func Evaluation(text string) ([]domain.EvaluationItem, bool) {
	if items := evaluationFromTable(text); len(items) > 0 {
		return items, true
	}
	if items := evaluationFromAnnotations(text); len(items) > 0 {
		return items, true
	}
	if items := evaluationFromInline(text); len(items) > 0 {
		return items, true
	}
	return []domain.EvaluationItem{
		{Name: "exam", Percentage: 80},
		{Name: "report", Percentage: 20},
	}, false
}

// evaluationFromTable scans pipe-delimited rows inside the evaluation
// section (or the whole document when no such section exists). The header
// row is the first row containing a known category keyword; the value row
// is the one whose leading cell reads "overall evaluation percentage".
// Header column N pairs with value column N; the leading label column,
// empty-named columns, the total column, and non-positive values are
// dropped.
//
// Column-to-header alignment assumes the label column is first and
// empty-string-named; source documents that reorder columns are not
// handled.
func evaluationFromTable(text string) []domain.EvaluationItem {
	section := evaluationSection(text)

	var header, values []string
	for _, line := range strings.Split(section, "\n") {
		if strings.Count(line, "|") < 2 {
			continue
		}
		cells := splitRow(line)
		if isSeparatorRow(cells) {
			continue
		}

		if values == nil && len(cells) > 0 && cellMatches(cells[0], valueRowLabels) {
			values = cells
			continue
		}
		if header == nil && hasCategoryCell(cells) {
			header = cells
		}
	}
	if header == nil || values == nil {
		return nil
	}

	n := len(header)
	if len(values) < n {
		n = len(values)
	}

	var items []domain.EvaluationItem
	for i := 1; i < n; i++ {
		name := strings.TrimSpace(header[i])
		if name == "" || cellMatches(name, totalLabels) {
			continue
		}
		pct, err := strconv.Atoi(strings.TrimSpace(values[i]))
		if err != nil || pct <= 0 {
			continue
		}
		items = append(items, domain.EvaluationItem{Name: name, Percentage: pct})
	}
	return items
}

// evaluationSection returns the text between the evaluation heading and the
// next heading, or the whole document when no evaluation heading exists.
func evaluationSection(text string) string {
	loc := evaluationHeadingRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	rest := text[loc[1]:]
	if next := anyHeadingRe.FindStringIndex(rest); next != nil {
		return rest[:next[0]]
	}
	return rest
}

func isSeparatorRow(cells []string) bool {
	sawDash := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		if strings.Trim(c, "-: ") != "" {
			return false
		}
		sawDash = true
	}
	return sawDash
}

func hasCategoryCell(cells []string) bool {
	for _, c := range cells {
		if cellMatches(c, categoryKeywords) {
			return true
		}
	}
	return false
}

// evaluationFromAnnotations matches "(NN%)" annotated category tuples in
// the grading policy section. The result is accepted only when the
// percentages sum close enough to 100 to be a full breakdown.
func evaluationFromAnnotations(text string) []domain.EvaluationItem {
	section := gradingSection(text)
	if section == "" {
		return nil
	}
	return plausibleSet(annotatedRe.FindAllStringSubmatch(section, -1))
}

func gradingSection(text string) string {
	loc := gradingHeadingRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if next := anyHeadingRe.FindStringIndex(rest); next != nil {
		return rest[:next[0]]
	}
	return rest
}

// evaluationFromInline matches "category ... NN%" anywhere in the document.
func evaluationFromInline(text string) []domain.EvaluationItem {
	return plausibleSet(inlineRe.FindAllStringSubmatch(text, -1))
}

// plausibleSet keeps the first occurrence per category name and accepts the
// set only when it sums within [98, 102].
func plausibleSet(matches [][]string) []domain.EvaluationItem {
	var items []domain.EvaluationItem
	seen := make(map[string]bool)
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		pct, err := strconv.Atoi(m[2])
		if err != nil || pct <= 0 {
			continue
		}
		seen[key] = true
		items = append(items, domain.EvaluationItem{Name: name, Percentage: pct})
	}

	sum := domain.WeightSum(items)
	if len(items) == 0 || sum < 98 || sum > 102 {
		return nil
	}
	return items
}
