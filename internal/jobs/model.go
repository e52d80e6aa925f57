package jobs

import "time"

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	TypeShortText      QuestionType = "SHORT_TEXT"
	TypeLongText       QuestionType = "LONG_TEXT"
	TypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	TypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

// Valid reports whether the type is one of the supported kinds.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeShortText, TypeLongText, TypeSingleChoice, TypeMultipleChoice:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the type carries a set of selectable options.
func (t QuestionType) HasOptions() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice
}

// QuestionOption is one selectable choice belonging to a choice question.
type QuestionOption struct {
	ID         string
	QuestionID string
	Label      string
	OrderIndex int
	IsActive   bool
	CreatedAt  time.Time
}

// Question is one prompt in a job's application form.
type Question struct {
	ID         string
	JobID      string
	Label      string
	Type       QuestionType
	IsRequired bool
	IsActive   bool
	Order      int
	CreatedAt  time.Time
	Options    []QuestionOption
}

// OptionByID returns the question's option with the given id, if present.
func (q Question) OptionByID(id string) (QuestionOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return QuestionOption{}, false
}

// Job is a postable position instance with its own slug and question set.
type Job struct {
	ID             string
	PositionID     string
	Slug           string
	Title          string
	Description    string
	RequiresResume bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Questions      []Question
}

// QuestionByID returns the job's question with the given id, if present.
func (j Job) QuestionByID(id string) (Question, bool) {
	for _, q := range j.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
