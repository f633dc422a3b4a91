package ai

import "context"

// Summarize generates the conceptual summary and themes for a file.
func (s *Service) Summarize(ctx context.Context, fileID string) (*SummaryResponse, error) {
	file, err := s.lookup(ctx, fileID)
	if err != nil {
		return nil, err
	}

	obj, err := s.generate(ctx, TaskSummary, file)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		Success:   true,
		File:      file.Title,
		AISummary: normalizeSummary(obj),
	}, nil
}
