package applications

import "time"

// AnswerTuple is the canonical answer shape flowing between normalization,
// validation, and persistence. Exactly one of TextValue/QuestionOptionID is
// set.
type AnswerTuple struct {
	QuestionID       string
	TextValue        *string
	QuestionOptionID *string
}

// Answer is one persisted response row. QuestionLabel and OptionLabel are
// filled on reads for admin display; they are not stored on the row.
type Answer struct {
	ID               string
	ApplicationID    string
	QuestionID       string
	TextValue        *string
	QuestionOptionID *string
	QuestionLabel    string
	OptionLabel      *string
	CreatedAt        time.Time
}

// Application is one candidate's full submission to one job.
type Application struct {
	ID        string
	JobID     string
	ResumeURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Answers   []Answer
}
