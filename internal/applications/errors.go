package applications

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound covers both absent and inactive jobs. Callers cannot
	// tell the two apart.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidAnswerFormat flags a tuple that is not exactly one of text
	// or option reference, or that points outside the job's schema.
	ErrInvalidAnswerFormat = errors.New("invalid answer format")

	// ErrResumeRequired flags a missing file on a job that demands one.
	ErrResumeRequired = errors.New("resume is required")

	// ErrInvalidFileType flags an upload with a disallowed extension.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrFileTooLarge flags an upload above the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotFound flags a missing application on admin reads.
	ErrNotFound = errors.New("application not found")

	// ErrInvalidInput flags malformed admin input.
	ErrInvalidInput = errors.New("invalid input")
)

// RequiredQuestionError reports an unanswered required question by its label
// so candidates can be told which prompt they skipped.
type RequiredQuestionError struct {
	Label string
}

func (e *RequiredQuestionError) Error() string {
	return fmt.Sprintf("required question %q is missing an answer", e.Label)
}
