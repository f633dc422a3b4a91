package ai

import (
	"encoding/json"
	"fmt"

	"github.com/studyaid/core/internal/models"
)

const (
	summaryPrompt = `
You are an expert educational assistant.
A teacher uploaded a study material with the following details:
%s

Your task:
1. Analyze this material conceptually (assume you have access to its content).
2. Generate a concise educational summary (4-6 sentences).
3. Identify 3-5 key topics or themes.

Return ONLY your answer in this exact JSON format:
{
  "summary": "short summary here",
  "themes": ["theme1", "theme2", "theme3"]
}
`

	quizPrompt = `
You are an expert quiz maker for educational materials.
Based on the following file information:
%s

Your task:
Generate exactly 5 quiz-style questions based on this material.
Each question must include a correct answer.

Return ONLY your answer in this exact JSON format:
{
  "quiz": [
    { "question": "Question 1 text", "answer": "Answer 1" },
    { "question": "Question 2 text", "answer": "Answer 2" },
    { "question": "Question 3 text", "answer": "Answer 3" },
    { "question": "Question 4 text", "answer": "Answer 4" },
    { "question": "Question 5 text", "answer": "Answer 5" }
  ]
}
`
)

var promptTemplates = map[Task]string{
	TaskSummary: summaryPrompt,
	TaskQuiz:    quizPrompt,
}

// buildPrompt embeds the whole file record as JSON; the model never sees the
// file content itself.
func buildPrompt(task Task, file *models.FileModel) (string, error) {
	template, ok := promptTemplates[task]
	if !ok {
		return "", fmt.Errorf("unknown AI task %q", task)
	}
	record, err := json.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode file record: %w", err)
	}
	return fmt.Sprintf(template, record), nil
}
