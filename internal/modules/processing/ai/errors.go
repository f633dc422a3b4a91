package ai

import (
	"errors"
	"fmt"
)

var (
	ErrFileIDRequired = errors.New("file id is required")
	ErrFileNotFound   = errors.New("file not found")
)

// UpstreamError reports a failed call to the completion provider. StatusCode is
// set when the provider answered with a non-2xx status; Err carries transport
// or decoding failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("AI API error: %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("AI API error: %v", e.Err)
	}
	return "AI API error"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
