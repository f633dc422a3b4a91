package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyaid/core/internal/models"
	"go.uber.org/zap"
)

// FileFinder looks up file records. A nil record with a nil error means the
// file does not exist.
type FileFinder interface {
	FindByID(ctx context.Context, id string) (*models.FileModel, error)
}

// Service turns file records into study aids through the completion provider.
// It keeps no per-request state and is safe for concurrent use.
type Service struct {
	files  FileFinder
	client CompletionClient
	model  string
	logger *zap.Logger
}

func NewService(files FileFinder, client CompletionClient, model string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{files: files, client: client, model: model, logger: logger}
}

func (s *Service) lookup(ctx context.Context, fileID string) (*models.FileModel, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, ErrFileIDRequired
	}
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// generate runs prompt -> completion -> extraction for one task and returns
// the extracted object, which may be empty.
func (s *Service) generate(ctx context.Context, task Task, file *models.FileModel) (map[string]any, error) {
	prompt, err := buildPrompt(task, file)
	if err != nil {
		return nil, err
	}

	params := taskParams[task]
	raw, err := s.client.Complete(ctx, CompletionRequest{
		Model:       s.model,
		Prompt:      prompt,
		MaxTokens:   params.maxTokens,
		Temperature: params.temperature,
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.With(zap.String("task", string(task)), zap.String("file_id", file.ID))
	log.Debug("ai raw response", zap.String("raw", raw))
	return extractJSONObject(raw, log), nil
}
