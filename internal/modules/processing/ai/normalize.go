package ai

import "strings"

const defaultSummaryText = "No summary provided"

// normalizeSummary never fails. Non-string themes are dropped.
func normalizeSummary(obj map[string]any) SummaryResult {
	result := SummaryResult{
		Summary: defaultSummaryText,
		Themes:  []string{},
	}
	if summary := trimmedString(obj["summary"]); summary != "" {
		result.Summary = summary
	}

	themes, ok := obj["themes"].([]any)
	if !ok {
		return result
	}
	for _, theme := range themes {
		if s, ok := theme.(string); ok {
			result.Themes = append(result.Themes, strings.TrimSpace(s))
		}
	}
	return result
}

// normalizeQuiz never fails. Entries that are not objects become empty pairs;
// the number of entries is whatever the model returned.
func normalizeQuiz(obj map[string]any) QuizResult {
	result := QuizResult{Quiz: []QuizItem{}}

	items, ok := obj["quiz"].([]any)
	if !ok {
		return result
	}
	for _, item := range items {
		entry, _ := item.(map[string]any)
		result.Quiz = append(result.Quiz, QuizItem{
			Question: trimmedString(entry["question"]),
			Answer:   trimmedString(entry["answer"]),
		})
	}
	return result
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
