package applications

import (
	"context"
	"errors"
	"time"

	"careers-backend/internal/jobs"
	"careers-backend/internal/queue"
	"careers-backend/internal/shared/metrics"
	"careers-backend/internal/shared/telemetry"
	"careers-backend/internal/shared/util"
)

// SchemaSource resolves a public slug or id to an active job carrying only
// active questions and options. Implemented by the jobs repository.
type SchemaSource interface {
	GetActiveJobBySlugOrID(ctx context.Context, key string) (jobs.Job, error)
}

// Service runs the submission pipeline and serves admin reads.
type Service struct {
	Repo    Repo
	Jobs    SchemaSource
	Resumes *ResumePolicy
	Queue   queue.Client
}

// SubmitRequest is one candidate submission.
type SubmitRequest struct {
	SlugOrID  string
	Answers   AnswerInput
	Resume    *ResumeFile
	RequestID string
}

// Submit takes a raw submission through lookup, normalization, validation,
// resume handling, and the transactional write, in that order. Every failure
// is terminal: nothing is persisted and no file is retained, since the file
// write happens only after all validation has passed. On success a queue
// message is sent best-effort; a send failure never fails the submission.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Application, error) {
	started := time.Now()
	metrics.IncSubmissionReceived()

	app, err := s.submit(ctx, req)
	if err != nil {
		metrics.IncSubmissionRejected()
		return Application{}, err
	}

	metrics.IncSubmissionAccepted()
	metrics.ObserveSubmissionDurationMs(float64(time.Since(started).Milliseconds()))
	return app, nil
}

func (s *Service) submit(ctx context.Context, req SubmitRequest) (Application, error) {
	job, err := s.Jobs.GetActiveJobBySlugOrID(ctx, req.SlugOrID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Application{}, ErrJobNotFound
		}
		return Application{}, err
	}

	tuples := Normalize(req.Answers)
	if err := Validate(job, tuples); err != nil {
		return Application{}, err
	}
	if err := CheckSchemaScope(job, tuples); err != nil {
		return Application{}, err
	}

	resumeURL, err := s.Resumes.Process(ctx, job.RequiresResume, req.Resume)
	if err != nil {
		return Application{}, err
	}

	now := time.Now().UTC()
	app := Application{
		ID:        util.NewID("app"),
		JobID:     job.ID,
		ResumeURL: resumeURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, t := range tuples {
		app.Answers = append(app.Answers, Answer{
			ID:               util.NewID("ans"),
			ApplicationID:    app.ID,
			QuestionID:       t.QuestionID,
			TextValue:        t.TextValue,
			QuestionOptionID: t.QuestionOptionID,
			CreatedAt:        now,
		})
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	s.notify(ctx, app, req.RequestID)
	return app, nil
}

func (s *Service) notify(ctx context.Context, app Application, requestID string) {
	if s.Queue == nil {
		return
	}
	msg := queue.Message{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		RequestID:     requestID,
		EnqueuedAt:    time.Now().UTC().Format(time.RFC3339),
		Version:       1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Warn("submission event send failed", map[string]any{
			"application_id": app.ID,
			"error":          err.Error(),
		})
	}
}

// Get returns one application with its answers for admin review.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// ListByJob returns application headers for a job.
func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if jobID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByJob(ctx, jobID)
}
