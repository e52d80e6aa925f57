package applications

import (
	"context"
	"sort"
	"sync"

	"careers-backend/internal/jobs"
)

// SchemaLookup resolves a job's full question schema, active or not. The
// memory repo uses it to annotate answers with labels on reads.
type SchemaLookup interface {
	GetJobByID(ctx context.Context, id string) (jobs.Job, error)
}

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	apps   map[string]Application
	Schema SchemaLookup
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{apps: make(map[string]Application)}
}

func (r *MemoryRepo) Create(_ context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.Answers = append([]Answer(nil), app.Answers...)
	r.apps[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	r.mu.RLock()
	app, ok := r.apps[id]
	r.mu.RUnlock()
	if !ok {
		return Application{}, ErrNotFound
	}

	out := app
	out.Answers = append([]Answer(nil), app.Answers...)
	if r.Schema != nil {
		job, err := r.Schema.GetJobByID(ctx, app.JobID)
		if err == nil {
			annotate(out.Answers, job)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListByJob(_ context.Context, jobID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.apps {
		if app.JobID != jobID {
			continue
		}
		header := app
		header.Answers = nil
		out = append(out, header)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) QuestionAnswered(_ context.Context, questionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.apps {
		for _, ans := range app.Answers {
			if ans.QuestionID == questionID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *MemoryRepo) OptionReferenced(_ context.Context, optionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.apps {
		for _, ans := range app.Answers {
			if ans.QuestionOptionID != nil && *ans.QuestionOptionID == optionID {
				return true, nil
			}
		}
	}
	return false, nil
}

func annotate(answers []Answer, job jobs.Job) {
	for i := range answers {
		q, ok := job.QuestionByID(answers[i].QuestionID)
		if !ok {
			continue
		}
		answers[i].QuestionLabel = q.Label
		if answers[i].QuestionOptionID != nil {
			if opt, ok := q.OptionByID(*answers[i].QuestionOptionID); ok {
				label := opt.Label
				answers[i].OptionLabel = &label
			}
		}
	}
}

var _ Repo = (*MemoryRepo)(nil)
var _ jobs.AnswerChecker = (*MemoryRepo)(nil)
