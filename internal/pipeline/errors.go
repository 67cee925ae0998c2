package pipeline

import (
	"errors"
	"fmt"
)

// Pipeline error sentinels
var (
	ErrEmptyInput = errors.New("input document is empty")
)

// EngineError marks a failure of one pipeline stage inside the PDF engine.
// It carries the stage name and the original input size so a failure can be
// diagnosed without re-running the call.
type EngineError struct {
	Stage        string
	OriginalSize int64
	Err          error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s failed for %d byte input: %v", e.Stage, e.OriginalSize, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new engine error
func NewEngineError(stage string, originalSize int64, err error) *EngineError {
	return &EngineError{
		Stage:        stage,
		OriginalSize: originalSize,
		Err:          err,
	}
}
