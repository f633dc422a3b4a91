package ai

import "context"

// Quiz generates question/answer pairs for a file. The model is asked for
// five; the count is not enforced.
func (s *Service) Quiz(ctx context.Context, fileID string) (*QuizResponse, error) {
	file, err := s.lookup(ctx, fileID)
	if err != nil {
		return nil, err
	}

	obj, err := s.generate(ctx, TaskQuiz, file)
	if err != nil {
		return nil, err
	}

	return &QuizResponse{
		Success: true,
		File:    file.Title,
		Quiz:    normalizeQuiz(obj).Quiz,
	}, nil
}
