// Package ai defines model-assisted collaborators of the screener.
package ai

import (
	"context"
	"fmt"

	"github.com/spigell/resume-screener/internal/resume"
)

const (
	StageGenerate = "generate"
	StageParse    = "parse"
)

// Extractor reads resume facts with the help of a language model.
type Extractor interface {
	ExtractFacts(ctx context.Context, text string) (*resume.Facts, error)
}

// ExtractionError reports at which stage a model-assisted extraction failed.
type ExtractionError struct {
	Stage string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("ai extraction failed at %s stage: %v", e.Stage, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
