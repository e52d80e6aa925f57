package jobs

import (
	"context"
	"regexp"
	"strings"
	"time"

	"careers-backend/internal/shared/util"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PositionChecker reports whether a position exists. It is implemented by the
// positions repository.
type PositionChecker interface {
	PositionExists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for jobs, their questions, and options.
type Service struct {
	Repo      Repo
	Positions PositionChecker
}

// CreateJobInput carries the fields for a new job posting.
type CreateJobInput struct {
	PositionID     string
	Slug           string
	Title          string
	Description    string
	RequiresResume bool
}

// CreateJob validates and stores a new job posting. New jobs start inactive
// so they can be assembled before going live.
func (s *Service) CreateJob(ctx context.Context, in CreateJobInput) (Job, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	if in.PositionID == "" || in.Title == "" || !slugPattern.MatchString(in.Slug) {
		return Job{}, ErrInvalidInput
	}

	if s.Positions != nil {
		exists, err := s.Positions.PositionExists(ctx, in.PositionID)
		if err != nil {
			return Job{}, err
		}
		if !exists {
			return Job{}, ErrPositionMissing
		}
	}

	now := time.Now().UTC()
	job := Job{
		ID:             util.NewID("job"),
		PositionID:     in.PositionID,
		Slug:           in.Slug,
		Title:          in.Title,
		Description:    strings.TrimSpace(in.Description),
		RequiresResume: in.RequiresResume,
		IsActive:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.CreateJob(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// GetJob returns one job with its full question schema, active or not.
func (s *Service) GetJob(ctx context.Context, id string) (Job, error) {
	if id == "" {
		return Job{}, ErrInvalidInput
	}
	return s.Repo.GetJobByID(ctx, id)
}

// GetActiveJob resolves a public slug or id to an active job carrying only
// active questions and options.
func (s *Service) GetActiveJob(ctx context.Context, key string) (Job, error) {
	if key == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.GetActiveJobBySlugOrID(ctx, key)
}

// ListJobs returns all job headers.
func (s *Service) ListJobs(ctx context.Context) ([]Job, error) {
	return s.Repo.ListJobs(ctx)
}

// ListActiveJobs returns the publicly visible job headers.
func (s *Service) ListActiveJobs(ctx context.Context) ([]Job, error) {
	return s.Repo.ListActiveJobs(ctx)
}

// UpdateJobInput carries the mutable fields of a job posting.
type UpdateJobInput struct {
	Slug           string
	Title          string
	Description    string
	RequiresResume bool
}

// UpdateJob rewrites a job's mutable fields.
func (s *Service) UpdateJob(ctx context.Context, id string, in UpdateJobInput) (Job, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	if id == "" || in.Title == "" || !slugPattern.MatchString(in.Slug) {
		return Job{}, ErrInvalidInput
	}

	job, err := s.Repo.GetJobByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	job.Slug = in.Slug
	job.Title = in.Title
	job.Description = strings.TrimSpace(in.Description)
	job.RequiresResume = in.RequiresResume
	job.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateJob(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// SetJobActive publishes or unpublishes a job.
func (s *Service) SetJobActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.SetJobActive(ctx, id, active)
}

// DeleteJob removes a job and its schema. Jobs with applications cannot be
// deleted.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.DeleteJob(ctx, id)
}

// CreateQuestionInput carries the fields for a new question.
type CreateQuestionInput struct {
	Label      string
	Type       QuestionType
	IsRequired bool
	Order      int
}

// CreateQuestion validates and stores a new question under a job.
func (s *Service) CreateQuestion(ctx context.Context, jobID string, in CreateQuestionInput) (Question, error) {
	in.Label = strings.TrimSpace(in.Label)
	if jobID == "" || in.Label == "" || !in.Type.Valid() || in.Order < 0 {
		return Question{}, ErrInvalidInput
	}

	q := Question{
		ID:         util.NewID("qst"),
		JobID:      jobID,
		Label:      in.Label,
		Type:       in.Type,
		IsRequired: in.IsRequired,
		IsActive:   true,
		Order:      in.Order,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateQuestion(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// UpdateQuestionInput carries the mutable fields of a question. A question's
// type is fixed after creation since answers depend on it.
type UpdateQuestionInput struct {
	Label      string
	IsRequired bool
	IsActive   bool
	Order      int
}

// UpdateQuestion rewrites a question's mutable fields.
func (s *Service) UpdateQuestion(ctx context.Context, id string, in UpdateQuestionInput) (Question, error) {
	in.Label = strings.TrimSpace(in.Label)
	if id == "" || in.Label == "" || in.Order < 0 {
		return Question{}, ErrInvalidInput
	}

	q, err := s.Repo.GetQuestionByID(ctx, id)
	if err != nil {
		return Question{}, err
	}
	q.Label = in.Label
	q.IsRequired = in.IsRequired
	q.IsActive = in.IsActive
	q.Order = in.Order
	if err := s.Repo.UpdateQuestion(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// DeleteQuestion removes a question and its options. Questions with submitted
// answers cannot be deleted.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.DeleteQuestion(ctx, id)
}

// CreateOption validates and stores a new option under a choice question.
func (s *Service) CreateOption(ctx context.Context, questionID, label string, orderIndex int) (QuestionOption, error) {
	label = strings.TrimSpace(label)
	if questionID == "" || label == "" || orderIndex < 0 {
		return QuestionOption{}, ErrInvalidInput
	}

	q, err := s.Repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return QuestionOption{}, err
	}
	if !q.Type.HasOptions() {
		return QuestionOption{}, ErrInvalidInput
	}

	opt := QuestionOption{
		ID:         util.NewID("opt"),
		QuestionID: questionID,
		Label:      label,
		OrderIndex: orderIndex,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateOption(ctx, opt); err != nil {
		return QuestionOption{}, err
	}
	return opt, nil
}

// UpdateOption renames an option.
func (s *Service) UpdateOption(ctx context.Context, id, label string) error {
	label = strings.TrimSpace(label)
	if id == "" || label == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateOption(ctx, QuestionOption{ID: id, Label: label})
}

// SetOptionActive toggles an option's visibility to candidates. Deactivating
// keeps historical answers intact.
func (s *Service) SetOptionActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.SetOptionActive(ctx, id, active)
}

// ReorderOptions reassigns option order following orderedIDs, which must be
// exactly the question's current option set.
func (s *Service) ReorderOptions(ctx context.Context, questionID string, orderedIDs []string) error {
	if questionID == "" || len(orderedIDs) == 0 {
		return ErrInvalidInput
	}

	q, err := s.Repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(q.Options) {
		return ErrInvalidInput
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := q.OptionByID(id); !ok || seen[id] {
			return ErrInvalidInput
		}
		seen[id] = true
	}

	return s.Repo.ReorderOptions(ctx, questionID, orderedIDs)
}

// DeleteOption removes an option. Options referenced by submitted answers
// cannot be deleted.
func (s *Service) DeleteOption(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.DeleteOption(ctx, id)
}
