package ai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyaid/core/internal/models"
)

func testFile() *models.FileModel {
	file := &models.FileModel{Title: "Biology 101", FileName: "bio.pdf", Subject: "biology"}
	file.ID = "f1"
	return file
}

func TestBuildPromptEmbedsRecord(t *testing.T) {
	file := testFile()
	record, err := json.Marshal(file)
	require.NoError(t, err)

	for _, task := range []Task{TaskSummary, TaskQuiz} {
		prompt, err := buildPrompt(task, file)
		require.NoError(t, err)
		assert.Contains(t, prompt, string(record))
		assert.Contains(t, prompt, "Return ONLY your answer in this exact JSON format")
	}
}

func TestBuildPromptShapes(t *testing.T) {
	summary, err := buildPrompt(TaskSummary, testFile())
	require.NoError(t, err)
	assert.Contains(t, summary, "expert educational assistant")
	assert.Contains(t, summary, `"themes": ["theme1", "theme2", "theme3"]`)

	quiz, err := buildPrompt(TaskQuiz, testFile())
	require.NoError(t, err)
	assert.Contains(t, quiz, "Generate exactly 5 quiz-style questions")
	assert.Equal(t, 5, strings.Count(quiz, `"question":`))
}

func TestBuildPromptDeterministic(t *testing.T) {
	a, err := buildPrompt(TaskSummary, testFile())
	require.NoError(t, err)
	b, err := buildPrompt(TaskSummary, testFile())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildPromptUnknownTask(t *testing.T) {
	_, err := buildPrompt(Task("flashcards"), testFile())
	assert.Error(t, err)
}
