package applications

import (
	"strings"

	"careers-backend/internal/jobs"
)

// Validate checks canonical tuples against a job's active question schema.
// Required questions are checked first so candidates hear about a skipped
// prompt before a malformed one. Non-mutating and stateless: the same input
// always yields the same outcome.
func Validate(job jobs.Job, tuples []AnswerTuple) error {
	for _, q := range job.Questions {
		if !q.IsRequired {
			continue
		}
		if !questionAnswered(q.ID, tuples) {
			return &RequiredQuestionError{Label: q.Label}
		}
	}

	for _, t := range tuples {
		hasText := t.TextValue != nil
		hasOption := t.QuestionOptionID != nil
		if hasText == hasOption {
			return ErrInvalidAnswerFormat
		}
	}
	return nil
}

// questionAnswered reports whether any tuple carries a usable answer for the
// question. Whitespace-only text does not count.
func questionAnswered(questionID string, tuples []AnswerTuple) bool {
	for _, t := range tuples {
		if t.QuestionID != questionID {
			continue
		}
		if t.QuestionOptionID != nil && *t.QuestionOptionID != "" {
			return true
		}
		if t.TextValue != nil && strings.TrimSpace(*t.TextValue) != "" {
			return true
		}
	}
	return false
}

// CheckSchemaScope verifies every tuple points at a question of the job and
// every option reference at an option of that same question. The database
// enforces the same rule with foreign keys; checking here turns a would-be
// persistence error into a clean validation failure.
func CheckSchemaScope(job jobs.Job, tuples []AnswerTuple) error {
	for _, t := range tuples {
		q, ok := job.QuestionByID(t.QuestionID)
		if !ok {
			return ErrInvalidAnswerFormat
		}
		if t.QuestionOptionID != nil {
			if _, ok := q.OptionByID(*t.QuestionOptionID); !q.Type.HasOptions() || !ok {
				return ErrInvalidAnswerFormat
			}
		}
	}
	return nil
}
