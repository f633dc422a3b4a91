package ai

// Task selects the prompt and completion parameters for one study aid.
type Task string

const (
	TaskSummary Task = "summary"
	TaskQuiz    Task = "quiz"
)

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// SummaryResult is the normalized summary payload.
type SummaryResult struct {
	Summary string   `json:"summary"`
	Themes  []string `json:"themes"`
}

// QuizItem is a single question with its answer.
type QuizItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizResult is the normalized quiz payload.
type QuizResult struct {
	Quiz []QuizItem `json:"quiz"`
}

// SummaryResponse is returned by GET /files/summary/:id.
type SummaryResponse struct {
	Success   bool          `json:"success"`
	File      string        `json:"file"`
	AISummary SummaryResult `json:"aiSummary"`
}

// QuizResponse is returned by GET /files/quiz/:id.
type QuizResponse struct {
	Success bool       `json:"success"`
	File    string     `json:"file"`
	Quiz    []QuizItem `json:"quiz"`
}

type completionParams struct {
	maxTokens   int
	temperature float64
}

var taskParams = map[Task]completionParams{
	TaskSummary: {maxTokens: 400, temperature: 0.6},
	TaskQuiz:    {maxTokens: 500, temperature: 0.7},
}
