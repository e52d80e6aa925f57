package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	jobs    map[string]Job
	answers AnswerChecker
}

// AnswerChecker reports whether submitted answers reference a question or
// option. The memory repo consults it for delete guards since it has no
// foreign keys to lean on.
type AnswerChecker interface {
	QuestionAnswered(ctx context.Context, questionID string) (bool, error)
	OptionReferenced(ctx context.Context, optionID string) (bool, error)
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]Job)}
}

// SetAnswerChecker wires the delete guards. Without one, deletes are
// unguarded.
func (r *MemoryRepo) SetAnswerChecker(c AnswerChecker) {
	r.answers = c
}

func (r *MemoryRepo) CreateJob(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.jobs {
		if existing.Slug == job.Slug {
			return ErrSlugTaken
		}
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *MemoryRepo) GetJobByID(_ context.Context, id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return cloneJob(job), nil
}

func (r *MemoryRepo) GetActiveJobBySlugOrID(_ context.Context, key string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if !job.IsActive {
			continue
		}
		if job.Slug == key || job.ID == key {
			out := cloneJob(job)
			out.Questions = filterActiveQuestions(out.Questions)
			return out, nil
		}
	}
	return Job{}, ErrNotFound
}

func (r *MemoryRepo) ListJobs(_ context.Context) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, cloneJob(job))
	}
	sortJobsNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) ListActiveJobs(_ context.Context) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Job
	for _, job := range r.jobs {
		if job.IsActive {
			out = append(out, cloneJob(job))
		}
	}
	sortJobsNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) UpdateJob(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range r.jobs {
		if id != job.ID && other.Slug == job.Slug {
			return ErrSlugTaken
		}
	}
	job.Questions = existing.Questions
	job.CreatedAt = existing.CreatedAt
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *MemoryRepo) SetJobActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.IsActive = active
	job.UpdatedAt = time.Now().UTC()
	r.jobs[id] = job
	return nil
}

func (r *MemoryRepo) DeleteJob(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if r.answers != nil {
		for _, q := range job.Questions {
			answered, err := r.answers.QuestionAnswered(ctx, q.ID)
			if err != nil {
				return err
			}
			if answered {
				return ErrJobInUse
			}
		}
	}
	delete(r.jobs, id)
	return nil
}

func (r *MemoryRepo) PositionHasJobs(_ context.Context, positionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if job.PositionID == positionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) CreateQuestion(_ context.Context, q Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[q.JobID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range job.Questions {
		if existing.Order == q.Order {
			return ErrOrderTaken
		}
	}
	job.Questions = append(job.Questions, cloneQuestion(q))
	sort.Slice(job.Questions, func(i, j int) bool {
		return job.Questions[i].Order < job.Questions[j].Order
	})
	r.jobs[q.JobID] = job
	return nil
}

func (r *MemoryRepo) GetQuestionByID(_ context.Context, id string) (Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, _, _, ok := r.findQuestion(id)
	if !ok {
		return Question{}, ErrNotFound
	}
	return cloneQuestion(*q), nil
}

func (r *MemoryRepo) UpdateQuestion(_ context.Context, q Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, job, idx, ok := r.findQuestion(q.ID)
	if !ok {
		return ErrNotFound
	}
	for _, other := range job.Questions {
		if other.ID != q.ID && other.Order == q.Order {
			return ErrOrderTaken
		}
	}
	q.JobID = existing.JobID
	q.Type = existing.Type
	q.CreatedAt = existing.CreatedAt
	q.Options = existing.Options
	job.Questions[idx] = cloneQuestion(q)
	sort.Slice(job.Questions, func(i, j int) bool {
		return job.Questions[i].Order < job.Questions[j].Order
	})
	r.jobs[job.ID] = *job
	return nil
}

func (r *MemoryRepo) DeleteQuestion(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, job, idx, ok := r.findQuestion(id)
	if !ok {
		return ErrNotFound
	}
	if r.answers != nil {
		answered, err := r.answers.QuestionAnswered(ctx, id)
		if err != nil {
			return err
		}
		if answered {
			return ErrQuestionInUse
		}
	}
	job.Questions = append(job.Questions[:idx], job.Questions[idx+1:]...)
	r.jobs[job.ID] = *job
	return nil
}

func (r *MemoryRepo) CreateOption(_ context.Context, opt QuestionOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, job, idx, ok := r.findQuestion(opt.QuestionID)
	if !ok {
		return ErrNotFound
	}
	for _, existing := range q.Options {
		if existing.OrderIndex == opt.OrderIndex {
			return ErrOrderTaken
		}
	}
	q.Options = append(q.Options, opt)
	sort.Slice(q.Options, func(i, j int) bool {
		return q.Options[i].OrderIndex < q.Options[j].OrderIndex
	})
	job.Questions[idx] = *q
	r.jobs[job.ID] = *job
	return nil
}

func (r *MemoryRepo) UpdateOption(_ context.Context, opt QuestionOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutateOption(opt.ID, func(o *QuestionOption) {
		o.Label = opt.Label
	})
}

func (r *MemoryRepo) SetOptionActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutateOption(id, func(o *QuestionOption) {
		o.IsActive = active
	})
}

func (r *MemoryRepo) ReorderOptions(_ context.Context, questionID string, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, job, idx, ok := r.findQuestion(questionID)
	if !ok {
		return ErrNotFound
	}
	byID := make(map[string]QuestionOption, len(q.Options))
	for _, opt := range q.Options {
		byID[opt.ID] = opt
	}
	reordered := make([]QuestionOption, 0, len(orderedIDs))
	for i, optionID := range orderedIDs {
		opt, ok := byID[optionID]
		if !ok {
			return ErrNotFound
		}
		opt.OrderIndex = i
		reordered = append(reordered, opt)
	}
	q.Options = reordered
	job.Questions[idx] = *q
	r.jobs[job.ID] = *job
	return nil
}

func (r *MemoryRepo) DeleteOption(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.answers != nil {
		referenced, err := r.answers.OptionReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ErrOptionInUse
		}
	}
	for jobID, job := range r.jobs {
		for qi := range job.Questions {
			for oi, opt := range job.Questions[qi].Options {
				if opt.ID == id {
					opts := job.Questions[qi].Options
					job.Questions[qi].Options = append(opts[:oi], opts[oi+1:]...)
					r.jobs[jobID] = job
					return nil
				}
			}
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) findQuestion(id string) (*Question, *Job, int, bool) {
	for jobID := range r.jobs {
		job := r.jobs[jobID]
		for i := range job.Questions {
			if job.Questions[i].ID == id {
				return &job.Questions[i], &job, i, true
			}
		}
	}
	return nil, nil, 0, false
}

func (r *MemoryRepo) mutateOption(id string, fn func(*QuestionOption)) error {
	for jobID, job := range r.jobs {
		for qi := range job.Questions {
			for oi := range job.Questions[qi].Options {
				if job.Questions[qi].Options[oi].ID == id {
					fn(&job.Questions[qi].Options[oi])
					r.jobs[jobID] = job
					return nil
				}
			}
		}
	}
	return ErrNotFound
}

func cloneJob(job Job) Job {
	out := job
	out.Questions = make([]Question, len(job.Questions))
	for i, q := range job.Questions {
		out.Questions[i] = cloneQuestion(q)
	}
	return out
}

func cloneQuestion(q Question) Question {
	out := q
	out.Options = append([]QuestionOption(nil), q.Options...)
	return out
}

func filterActiveQuestions(questions []Question) []Question {
	var out []Question
	for _, q := range questions {
		if !q.IsActive {
			continue
		}
		var opts []QuestionOption
		for _, opt := range q.Options {
			if opt.IsActive {
				opts = append(opts, opt)
			}
		}
		q.Options = opts
		out = append(out, q)
	}
	return out
}

func sortJobsNewestFirst(jobs []Job) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
