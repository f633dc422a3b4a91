package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyaid/core/internal/models"
)

type fakeFinder struct {
	files map[string]*models.FileModel
	err   error
}

func (f *fakeFinder) FindByID(_ context.Context, id string) (*models.FileModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files[id], nil
}

type fakeCompletion struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []CompletionRequest
}

func (f *fakeCompletion) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.reply, f.err
}

func (f *fakeCompletion) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func newTestRouter(finder FileFinder, client CompletionClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(finder, client, "openai/gpt-4o", nil)
	NewHandler(svc, nil).RegisterRoutes(r.Group(""))
	return r
}

func doGet(t *testing.T, r http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func biologyFinder() *fakeFinder {
	return &fakeFinder{files: map[string]*models.FileModel{"f1": testFile()}}
}

func TestGetSummary(t *testing.T) {
	client := &fakeCompletion{reply: "```json\n{\"summary\":\"Cells are...\",\"themes\":[\"cell\",\"dna\",\" mitosis \"]}\n```"}
	r := newTestRouter(biologyFinder(), client)

	w, body := doGet(t, r, "/files/summary/f1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Biology 101", body["file"])
	assert.Equal(t, map[string]any{
		"summary": "Cells are...",
		"themes":  []any{"cell", "dna", "mitosis"},
	}, body["aiSummary"])

	require.Equal(t, 1, client.calls())
	req := client.reqs[0]
	assert.Equal(t, "openai/gpt-4o", req.Model)
	assert.Equal(t, 400, req.MaxTokens)
	assert.Equal(t, 0.6, req.Temperature)
	assert.Contains(t, req.Prompt, `"title":"Biology 101"`)
}

func TestGetSummaryMalformedReply(t *testing.T) {
	client := &fakeCompletion{reply: "I cannot help with that."}
	r := newTestRouter(biologyFinder(), client)

	w, body := doGet(t, r, "/files/summary/f1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"summary": "No summary provided",
		"themes":  []any{},
	}, body["aiSummary"])
}

func TestGetQuiz(t *testing.T) {
	client := &fakeCompletion{reply: `Here you go: {"quiz":[{"question":" What is a cell? ","answer":"The unit of life"},{"question":"Q2"}]}`}
	r := newTestRouter(biologyFinder(), client)

	w, body := doGet(t, r, "/files/quiz/f1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Biology 101", body["file"])
	assert.Equal(t, []any{
		map[string]any{"question": "What is a cell?", "answer": "The unit of life"},
		map[string]any{"question": "Q2", "answer": ""},
	}, body["quiz"])

	require.Equal(t, 1, client.calls())
	assert.Equal(t, 500, client.reqs[0].MaxTokens)
	assert.Equal(t, 0.7, client.reqs[0].Temperature)
}

func TestGetQuizMalformedReply(t *testing.T) {
	r := newTestRouter(biologyFinder(), &fakeCompletion{reply: `{"quiz": "none"}`})

	w, body := doGet(t, r, "/files/quiz/f1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body["quiz"])
}

func TestMissingFileID(t *testing.T) {
	client := &fakeCompletion{reply: "{}"}
	r := newTestRouter(biologyFinder(), client)

	for _, path := range []string{"/files/summary", "/files/quiz", "/files/summary/%20"} {
		w, body := doGet(t, r, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, map[string]any{"message": "File ID is required"}, body, path)
	}
	assert.Zero(t, client.calls())
}

func TestFileNotFound(t *testing.T) {
	client := &fakeCompletion{reply: "{}"}
	r := newTestRouter(biologyFinder(), client)

	for _, path := range []string{"/files/summary/missing", "/files/quiz/missing"} {
		w, body := doGet(t, r, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, map[string]any{"message": "File not found"}, body, path)
	}
	assert.Zero(t, client.calls(), "provider must not be called for unknown files")
}

func TestUpstreamFailure(t *testing.T) {
	client := &fakeCompletion{err: &UpstreamError{Provider: ProviderOpenRouter, StatusCode: http.StatusUnauthorized}}
	r := newTestRouter(biologyFinder(), client)

	w, body := doGet(t, r, "/files/summary/f1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{
		"success": false,
		"message": "Failed to generate AI summary",
		"error":   "AI API error: 401",
	}, body)

	w, body = doGet(t, r, "/files/quiz/f1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to generate quiz", body["message"])
	assert.Equal(t, 2, client.calls(), "one attempt per request")
}

func TestStoreFailure(t *testing.T) {
	client := &fakeCompletion{reply: "{}"}
	r := newTestRouter(&fakeFinder{err: errors.New("connection refused")}, client)

	w, body := doGet(t, r, "/files/quiz/f1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate quiz", body["message"])
	assert.Equal(t, "lookup file: connection refused", body["error"])
	assert.Zero(t, client.calls())
}

func TestServiceConcurrentRequests(t *testing.T) {
	client := &fakeCompletion{reply: `{"summary":"s","themes":["t"]}`}
	svc := NewService(biologyFinder(), client, "m", nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Summarize(context.Background(), "f1")
			assert.NoError(t, err)
			assert.Equal(t, []string{"t"}, res.AISummary.Themes)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, client.calls())
}
