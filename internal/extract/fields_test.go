package extract

import (
	"testing"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

func TestTitleFromHeading(t *testing.T) {
	text := "# Applied Mathematics II\n\nSome body text."
	if got := Title(text, ""); got != "Applied Mathematics II" {
		t.Errorf("Title() = %q, want %q", got, "Applied Mathematics II")
	}
}

func TestTitleSkipsBoilerplateHeadings(t *testing.T) {
	text := "# シラバス\n\n# 応用数学II\n"
	if got := Title(text, ""); got != "応用数学II" {
		t.Errorf("Title() = %q, want %q", got, "応用数学II")
	}
}

func TestTitleFromTableRow(t *testing.T) {
	text := "Some intro\n\n| 科目名 | 電気回路学 |\n| 担当教員 | 鈴木 |\n"
	if got := Title(text, ""); got != "電気回路学" {
		t.Errorf("Title() = %q, want %q", got, "電気回路学")
	}
}

func TestTitleFromURLQueryParam(t *testing.T) {
	// No heading, no labeled table row: the subject id embedded in the
	// source URL is the last resort before "Unknown".
	text := "just some unstructured text without tables"
	url := "https://syllabus.example.test/Pages/detail?subject_id=0042"
	if got := Title(text, url); got != "0042" {
		t.Errorf("Title() = %q, want %q", got, "0042")
	}
}

func TestTitleDefault(t *testing.T) {
	if got := Title("nothing useful", "https://example.test/detail"); got != UnknownTitle {
		t.Errorf("Title() = %q, want %q", got, UnknownTitle)
	}
}

func TestInstructor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "table row with trailing delimiter",
			text: "| 担当教員 | 田中 太郎 ||\n",
			want: "田中 太郎",
		},
		{
			name: "english table row",
			text: "| Instructor | J. Smith |\n",
			want: "J. Smith",
		},
		{
			name: "colon separated japanese",
			text: "担当教員: 佐藤 花子\n",
			want: "佐藤 花子",
		},
		{
			name: "colon separated english full-width",
			text: "Instructor： R. Feynman\n",
			want: "R. Feynman",
		},
		{
			name: "missing",
			text: "no instructor information here",
			want: UnspecifiedInstructor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Instructor(tt.text); got != tt.want {
				t.Errorf("Instructor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCredits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		matched bool
	}{
		{"credit unit label", "| 単位数 | 2 |", 2, true},
		{"registered credits label", "履修単位: 4", 4, true},
		{"generic inline", "この科目は 3単位 です", 3, true},
		{"english generic", "worth 2 credits total", 2, true},
		{"out of range falls through", "単位数: 99", DefaultCredits, false},
		{"out of range then valid generic", "単位数: 0 ですが実質 2単位", 2, true},
		{"no match", "no numbers here", DefaultCredits, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := Credits(tt.text)
			if got != tt.want || matched != tt.matched {
				t.Errorf("Credits() = (%d, %v), want (%d, %v)", got, matched, tt.want, tt.matched)
			}
		})
	}
}

func TestTermOf(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Term
	}{
		{"field both halves", "| 開講時期 | 前期・後期 |", domain.TermBoth},
		{"field second half only", "| 開講時期 | 後期 |", domain.TermFall},
		{"field first half only", "| 開講時期 | 前期 |", domain.TermSpring},
		{"field english fall", "| Offering Period | 2nd semester |", domain.TermFall},
		{"no field scans document", "この講義は後期に開講される。", domain.TermFall},
		{"no field both in document", "前期と後期の両方で開講。", domain.TermBoth},
		{"default spring", "no period information", domain.TermSpring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TermOf(tt.text); got != tt.want {
				t.Errorf("TermOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		title string
		want  domain.ClassType
	}{
		{"explicit experiment", "| 授業形態 | 実験 |", "whatever", domain.ClassTypeExperiment},
		{"explicit practical", "| 授業形態 | 演習 |", "whatever", domain.ClassTypePractical},
		{"explicit lecture", "| 授業形態 | 講義 |", "whatever", domain.ClassTypeLecture},
		{"english format field", "| Teaching Format | Seminar |", "whatever", domain.ClassTypePractical},
		{"fallback to title experiment", "no format field", "電子工学実験I", domain.ClassTypeExperiment},
		{"fallback to title practical", "no format field", "プログラミング演習", domain.ClassTypePractical},
		{"default lecture", "no format field", "微分積分学", domain.ClassTypeLecture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassTypeOf(tt.text, tt.title); got != tt.want {
				t.Errorf("ClassTypeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	t.Run("bolded label", func(t *testing.T) {
		text := "**授業概要**: 電気回路の基礎を学ぶ。\n\n次の段落。"
		if got := Description(text); got != "電気回路の基礎を学ぶ。" {
			t.Errorf("Description() = %q", got)
		}
	})

	t.Run("table row", func(t *testing.T) {
		text := "| Course Overview | Introduction to circuits. |"
		if got := Description(text); got != "Introduction to circuits." {
			t.Errorf("Description() = %q", got)
		}
	})

	t.Run("absent is empty not error", func(t *testing.T) {
		if got := Description("nothing here"); got != "" {
			t.Errorf("Description() = %q, want empty", got)
		}
	})

	t.Run("truncated to 400 runes", func(t *testing.T) {
		long := make([]rune, 500)
		for i := range long {
			long[i] = 'あ'
		}
		text := "**Overview**: " + string(long)
		got := Description(text)
		if n := len([]rune(got)); n != 400 {
			t.Errorf("Description() length = %d runes, want 400", n)
		}
	})
}
