package ai

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// cleanCompletionText drops every markdown code fence marker and trims the rest.
func cleanCompletionText(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// extractJSONObject recovers the object spanning the first "{" to the last "}"
// of the model reply. It never fails: a missing or unparsable object is logged
// and an empty map is returned.
func extractJSONObject(raw string, logger *zap.Logger) map[string]any {
	cleaned := cleanCompletionText(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		logger.Warn("ai response contains no JSON object", zap.Int("length", len(raw)))
		return map[string]any{}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &out); err != nil {
		logger.Warn("ai response JSON parse error", zap.Error(err))
		return map[string]any{}
	}
	if out == nil {
		return map[string]any{}
	}
	return out
}
