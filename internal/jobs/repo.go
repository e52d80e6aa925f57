package jobs

import "context"

// Repo defines persistence operations for jobs, their questions, and options.
//
// GetActiveJobBySlugOrID is the submission-time schema source: it resolves a
// slug or id to an active job with only active questions and active options
// attached, and reports ErrNotFound for absent and inactive jobs alike.
type Repo interface {
	CreateJob(ctx context.Context, job Job) error
	GetJobByID(ctx context.Context, id string) (Job, error)
	GetActiveJobBySlugOrID(ctx context.Context, key string) (Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListActiveJobs(ctx context.Context) ([]Job, error)
	UpdateJob(ctx context.Context, job Job) error
	SetJobActive(ctx context.Context, id string, active bool) error
	DeleteJob(ctx context.Context, id string) error
	PositionHasJobs(ctx context.Context, positionID string) (bool, error)

	CreateQuestion(ctx context.Context, q Question) error
	GetQuestionByID(ctx context.Context, id string) (Question, error)
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error

	CreateOption(ctx context.Context, opt QuestionOption) error
	UpdateOption(ctx context.Context, opt QuestionOption) error
	SetOptionActive(ctx context.Context, id string, active bool) error
	ReorderOptions(ctx context.Context, questionID string, orderedIDs []string) error
	DeleteOption(ctx context.Context, id string) error
}
