package extract

import (
	"reflect"
	"testing"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
)

func TestEvaluationTableStrategy(t *testing.T) {
	text := `# 電気回路学

## 成績評価

|  | exam | report | routine |  | other | total |
| --- | --- | --- | --- | --- | --- | --- |
| overall evaluation percentage | 80 | 20 | 0 | 0 | 0 | 100 |

## 備考
`
	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("table strategy should be confident")
	}

	want := []domain.EvaluationItem{
		{Name: "exam", Percentage: 80},
		{Name: "report", Percentage: 20},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Evaluation() = %v, want %v", items, want)
	}
}

func TestEvaluationTableJapaneseLabels(t *testing.T) {
	text := `| | 試験 | レポート | 合計 |
| --- | --- | --- | --- |
| 総合評価割合 | 70 | 30 | 100 |
`
	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("table strategy should be confident")
	}

	want := []domain.EvaluationItem{
		{Name: "試験", Percentage: 70},
		{Name: "レポート", Percentage: 30},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Evaluation() = %v, want %v", items, want)
	}
}

func TestEvaluationAnnotatedNotesStrategy(t *testing.T) {
	text := `## 成績評価方法

定期試験の成績 (70%) とレポートの内容 (30%) により総合的に評価する。
`
	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("annotated strategy should be confident")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
	if items[0].Percentage != 70 || items[1].Percentage != 30 {
		t.Errorf("percentages = %v, want 70/30", items)
	}
}

func TestEvaluationAnnotatedRejectsImplausibleSum(t *testing.T) {
	// 70 + 10 = 80 is outside [98, 102]: the annotated strategy must not
	// accept a partial breakdown.
	text := `## grading policy

exam counts (70%) and quiz counts (10%).

これ以外の情報はありません。
`
	items, confident := Evaluation(text)
	if confident {
		t.Errorf("expected fallback, got confident result %v", items)
	}
}

func TestEvaluationGenericInlineStrategy(t *testing.T) {
	text := "評価は試験60%、レポート40%とする。"

	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("inline strategy should be confident")
	}
	want := []domain.EvaluationItem{
		{Name: "試験", Percentage: 60},
		{Name: "レポート", Percentage: 40},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Evaluation() = %v, want %v", items, want)
	}
}

func TestEvaluationInlineKeepsFirstOccurrencePerCategory(t *testing.T) {
	text := "exam 60%, report 40%. Reminder: exam 99% attendance required."

	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("inline strategy should be confident")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
	if items[0].Name != "exam" || items[0].Percentage != 60 {
		t.Errorf("first item = %v, want exam 60", items[0])
	}
}

func TestEvaluationFallbackDefault(t *testing.T) {
	items, confident := Evaluation("a document with no evaluation information at all")
	if confident {
		t.Error("fallback must not be confident")
	}

	want := []domain.EvaluationItem{
		{Name: "exam", Percentage: 80},
		{Name: "report", Percentage: 20},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Evaluation() = %v, want default %v", items, want)
	}
}

func TestEvaluationTableWithoutSectionHeading(t *testing.T) {
	// No evaluation heading: the whole document is scanned for the table.
	text := `| | exam | total |
| 総合評価割合 | 100 | 100 |
`
	items, confident := Evaluation(text)
	if !confident {
		t.Fatal("table strategy should be confident")
	}
	want := []domain.EvaluationItem{{Name: "exam", Percentage: 100}}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Evaluation() = %v, want %v", items, want)
	}
}
