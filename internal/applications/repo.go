package applications

import "context"

// Repo defines persistence operations for applications and their answers.
//
// Create persists the application header and all answer rows as one atomic
// unit. QuestionAnswered and OptionReferenced back delete guards in the
// schema-management services.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	QuestionAnswered(ctx context.Context, questionID string) (bool, error)
	OptionReferenced(ctx context.Context, optionID string) (bool, error)
}
