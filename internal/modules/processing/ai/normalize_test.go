package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSummary(t *testing.T) {
	cases := []struct {
		name string
		obj  map[string]any
		want SummaryResult
	}{
		{
			name: "trims values",
			obj:  map[string]any{"summary": "  Cells are...  ", "themes": []any{"cell", "dna", " mitosis "}},
			want: SummaryResult{Summary: "Cells are...", Themes: []string{"cell", "dna", "mitosis"}},
		},
		{
			name: "empty object",
			obj:  map[string]any{},
			want: SummaryResult{Summary: "No summary provided", Themes: []string{}},
		},
		{
			name: "blank summary",
			obj:  map[string]any{"summary": "   "},
			want: SummaryResult{Summary: "No summary provided", Themes: []string{}},
		},
		{
			name: "themes not an array",
			obj:  map[string]any{"summary": "s", "themes": "cell, dna"},
			want: SummaryResult{Summary: "s", Themes: []string{}},
		},
		{
			name: "non-string values",
			obj:  map[string]any{"summary": 42.0, "themes": []any{"cell", 7.0, nil, map[string]any{}, " dna"}},
			want: SummaryResult{Summary: "No summary provided", Themes: []string{"cell", "dna"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeSummary(tc.obj))
		})
	}
}

func TestNormalizeSummaryNilMap(t *testing.T) {
	got := normalizeSummary(nil)
	assert.Equal(t, "No summary provided", got.Summary)
	assert.NotNil(t, got.Themes)
}

func TestNormalizeQuiz(t *testing.T) {
	cases := []struct {
		name string
		obj  map[string]any
		want []QuizItem
	}{
		{
			name: "trims entries",
			obj: map[string]any{"quiz": []any{
				map[string]any{"question": " What is DNA? ", "answer": " A molecule "},
				map[string]any{"question": "Q2", "answer": "A2"},
			}},
			want: []QuizItem{{Question: "What is DNA?", Answer: "A molecule"}, {Question: "Q2", Answer: "A2"}},
		},
		{
			name: "missing fields",
			obj:  map[string]any{"quiz": []any{map[string]any{"question": "Only question"}, map[string]any{}}},
			want: []QuizItem{{Question: "Only question"}, {}},
		},
		{
			name: "non-object entries",
			obj:  map[string]any{"quiz": []any{"text", nil, map[string]any{"question": 1.0, "answer": true}}},
			want: []QuizItem{{}, {}, {}},
		},
		{
			name: "quiz not an array",
			obj:  map[string]any{"quiz": map[string]any{"question": "q"}},
			want: []QuizItem{},
		},
		{
			name: "empty object",
			obj:  map[string]any{},
			want: []QuizItem{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeQuiz(tc.obj)
			assert.NotNil(t, got.Quiz)
			assert.Equal(t, tc.want, got.Quiz)
		})
	}
}

func TestNormalizeQuizKeepsModelCount(t *testing.T) {
	items := make([]any, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, map[string]any{"question": "q", "answer": "a"})
	}
	assert.Len(t, normalizeQuiz(map[string]any{"quiz": items}).Quiz, 7)
}
