package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

// Defaults returned when every strategy in a cascade misses.
const (
	UnknownTitle          = "Unknown"
	UnspecifiedInstructor = "unspecified"
	DefaultCredits        = 2
)

var headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Headings that are site chrome, not subject names.
var boilerplateHeadings = []string{
	"syllabus", "web syllabus", "シラバス", "webシラバス",
	"search results", "検索結果",
	"menu", "メニュー",
	"home", "ホーム",
	"講義概要",
}

var subjectLabels = []string{"科目名", "授業科目", "subject name", "course name", "course title"}

// titleQueryKeys are URL query parameters that identify a subject, tried in
// order when the document itself yields no title.
var titleQueryKeys = []string{"subject_id", "subject_name", "course_id", "subject", "course"}

// Title extracts the subject name. Strategies, in order: first top-level
// heading that is not navigation boilerplate, a subject-labeled table row,
// a subject identifier from the source URL's query string, then "Unknown".
func Title(text, sourceURL string) string {
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		heading := strings.TrimSpace(m[1])
		if heading == "" || isBoilerplateHeading(heading) {
			continue
		}
		return heading
	}

	if v := tableRow(text, subjectLabels...); v != "" {
		return v
	}

	if parsed, err := url.Parse(sourceURL); err == nil {
		query := parsed.Query()
		for _, key := range titleQueryKeys {
			if v := query.Get(key); v != "" {
				return v
			}
		}
	}

	return UnknownTitle
}

func isBoilerplateHeading(heading string) bool {
	lower := strings.ToLower(heading)
	for _, b := range boilerplateHeadings {
		if lower == b {
			return true
		}
	}
	return false
}

var instructorLabels = []string{"担当教員", "担当教師", "教員名", "instructor", "lecturer"}

// Instructor extracts the instructor name: instructor-labeled table row,
// then a colon-separated "instructor:" line, then "unspecified".
func Instructor(text string) string {
	if v := tableRow(text, instructorLabels...); v != "" {
		return v
	}
	if v := labeledValue(text, instructorLabels...); v != "" {
		return v
	}
	return UnspecifiedInstructor
}

// creditPatterns are tried in order, most specific label phrasing first.
// \D{0,5} tolerates the delimiter between label and number in both inline
// and table form.
var creditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:単位数|credit units?)\D{0,5}(\d+)`),
	regexp.MustCompile(`(?i)(?:履修単位|registered credits)\D{0,5}(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:単位|credits?)`),
}

// Credits extracts the credit count. The first match within the accepted
// range wins; with no acceptable match the count defaults to 2 and the
// second return value is false.
func Credits(text string) (int, bool) {
	for _, re := range creditPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= domain.MinCredits && n <= domain.MaxCredits {
				return n, true
			}
		}
	}
	return DefaultCredits, false
}

var termLabels = []string{"開講時期", "開講学期", "開講期", "offering period", "semester offered"}

var (
	firstHalfKeywords  = []string{"前期", "first half", "first semester", "1st semester"}
	secondHalfKeywords = []string{"後期", "second half", "second semester", "2nd semester"}
)

// TermOf extracts the offering period. An explicit period field is
// preferred; without one the whole document is scanned. Both halves
// mentioned maps to "both", the second half alone to "fall", and anything
// else defaults to "spring".
func TermOf(text string) domain.Term {
	scope := tableRow(text, termLabels...)
	if scope == "" {
		scope = labeledValue(text, termLabels...)
	}
	if scope == "" {
		scope = text
	}

	first := containsAny(scope, firstHalfKeywords...)
	second := containsAny(scope, secondHalfKeywords...)
	switch {
	case first && second:
		return domain.TermBoth
	case second:
		return domain.TermFall
	default:
		return domain.TermSpring
	}
}

var classTypeLabels = []string{"授業形態", "授業形式", "授業方法", "teaching format", "class format"}

var (
	experimentKeywords = []string{"実験", "experiment"}
	practicalKeywords  = []string{"演習", "実習", "practical", "seminar", "practicum"}
)

// ClassTypeOf extracts the teaching format. An explicit format field is
// preferred; without one the title is scanned for the same keywords. The
// default is "lecture".
func ClassTypeOf(text, title string) domain.ClassType {
	scope := tableRow(text, classTypeLabels...)
	if scope == "" {
		scope = labeledValue(text, classTypeLabels...)
	}
	if scope == "" {
		scope = title
	}

	switch {
	case containsAny(scope, experimentKeywords...):
		return domain.ClassTypeExperiment
	case containsAny(scope, practicalKeywords...):
		return domain.ClassTypePractical
	default:
		return domain.ClassTypeLecture
	}
}

var descriptionLabels = []string{"授業概要", "授業の概要", "course overview", "overview", "course description"}

// descriptionMaxRunes caps the stored description length.
const descriptionMaxRunes = 400

var boldDescriptionRe = regexp.MustCompile(
	`(?si)\*\*\s*(?:授業概要|授業の概要|course overview|overview|course description)\s*\*\*\s*[:：]?\s*(.+?)(?:\n\s*\n|$)`)

// Description extracts the free-text overview paragraph, in bolded-label or
// table-row form, truncated to 400 characters. Absence is not an error; the
// empty string means no description.
func Description(text string) string {
	var value string
	if m := boldDescriptionRe.FindStringSubmatch(text); m != nil {
		value = strings.TrimSpace(m[1])
	}
	if value == "" {
		value = tableRow(text, descriptionLabels...)
	}
	if value == "" {
		return ""
	}

	runes := []rune(value)
	if len(runes) > descriptionMaxRunes {
		return string(runes[:descriptionMaxRunes])
	}
	return value
}
