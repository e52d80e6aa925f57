package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, position_id, slug, title, description, requires_resume, is_active, created_at, updated_at`

// CreateJob inserts a new job.
func (r *PGRepo) CreateJob(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, position_id, slug, title, description, requires_resume, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.PositionID,
		job.Slug,
		job.Title,
		job.Description,
		job.RequiresResume,
		job.IsActive,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrSlugTaken
			case pgForeignKeyViolation:
				return ErrPositionMissing
			}
		}
		return err
	}
	return nil
}

// GetJobByID returns a job with all questions and options, active or not.
func (r *PGRepo) GetJobByID(ctx context.Context, id string) (Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)
	job, err := r.scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return Job{}, err
	}
	if err := r.attachQuestions(ctx, &job, false); err != nil {
		return Job{}, err
	}
	return job, nil
}

// GetActiveJobBySlugOrID resolves a slug or id to an active job with only
// active questions and options. Absent and inactive jobs are indistinguishable.
func (r *PGRepo) GetActiveJobBySlugOrID(ctx context.Context, key string) (Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE (slug = $1 OR id = $1) AND is_active = TRUE`, jobColumns)
	job, err := r.scanJob(r.DB.QueryRowContext(ctx, query, key))
	if err != nil {
		return Job{}, err
	}
	if err := r.attachQuestions(ctx, &job, true); err != nil {
		return Job{}, err
	}
	return job, nil
}

// ListJobs returns all job headers, newest first.
func (r *PGRepo) ListJobs(ctx context.Context) ([]Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs ORDER BY created_at DESC`, jobColumns)
	return r.queryJobs(ctx, query)
}

// ListActiveJobs returns active job headers, newest first.
func (r *PGRepo) ListActiveJobs(ctx context.Context) ([]Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE is_active = TRUE ORDER BY created_at DESC`, jobColumns)
	return r.queryJobs(ctx, query)
}

// UpdateJob rewrites a job's mutable fields.
func (r *PGRepo) UpdateJob(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET slug = $1, title = $2, description = $3, requires_resume = $4, is_active = $5, updated_at = $6
WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		job.Slug,
		job.Title,
		job.Description,
		job.RequiresResume,
		job.IsActive,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrSlugTaken
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetJobActive toggles a job's active flag.
func (r *PGRepo) SetJobActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE jobs SET is_active = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJob removes a job and, via cascade, its questions and options.
// Jobs with applications are protected by the applications FK.
func (r *PGRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrJobInUse
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PositionHasJobs reports whether any job is posted under the position.
func (r *PGRepo) PositionHasJobs(ctx context.Context, positionID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM jobs WHERE position_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, positionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateQuestion inserts a new question.
func (r *PGRepo) CreateQuestion(ctx context.Context, q Question) error {
	const query = `
INSERT INTO questions (id, job_id, label, type, is_required, is_active, ord, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		q.ID,
		q.JobID,
		q.Label,
		string(q.Type),
		q.IsRequired,
		q.IsActive,
		q.Order,
		q.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrOrderTaken
			case pgForeignKeyViolation:
				return ErrNotFound
			}
		}
		return err
	}
	return nil
}

// GetQuestionByID returns a question with all of its options.
func (r *PGRepo) GetQuestionByID(ctx context.Context, id string) (Question, error) {
	const query = `
SELECT id, job_id, label, type, is_required, is_active, ord, created_at
FROM questions
WHERE id = $1`
	q, err := scanQuestion(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return Question{}, err
	}
	opts, err := r.queryOptions(ctx, []string{q.ID}, false)
	if err != nil {
		return Question{}, err
	}
	q.Options = opts[q.ID]
	return q, nil
}

// UpdateQuestion rewrites a question's mutable fields.
func (r *PGRepo) UpdateQuestion(ctx context.Context, q Question) error {
	const query = `
UPDATE questions
SET label = $1, is_required = $2, is_active = $3, ord = $4
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query, q.Label, q.IsRequired, q.IsActive, q.Order, q.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrOrderTaken
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQuestion removes a question and its options. Questions referenced by
// answers are protected by the answers FK.
func (r *PGRepo) DeleteQuestion(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrQuestionInUse
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateOption inserts a new option.
func (r *PGRepo) CreateOption(ctx context.Context, opt QuestionOption) error {
	const query = `
INSERT INTO question_options (id, question_id, label, order_index, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		opt.ID,
		opt.QuestionID,
		opt.Label,
		opt.OrderIndex,
		opt.IsActive,
		opt.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrOrderTaken
			case pgForeignKeyViolation:
				return ErrNotFound
			}
		}
		return err
	}
	return nil
}

// UpdateOption rewrites an option's label.
func (r *PGRepo) UpdateOption(ctx context.Context, opt QuestionOption) error {
	const query = `UPDATE question_options SET label = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, opt.Label, opt.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOptionActive toggles an option's active flag.
func (r *PGRepo) SetOptionActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE question_options SET is_active = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderOptions reassigns zero-based order indexes following orderedIDs.
// The unique (question_id, order_index) constraint is deferred inside the
// transaction so intermediate states may collide.
func (r *PGRepo) ReorderOptions(ctx context.Context, questionID string, orderedIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SET CONSTRAINTS ALL DEFERRED`); err != nil {
		return err
	}

	for idx, optionID := range orderedIDs {
		const query = `UPDATE question_options SET order_index = $1 WHERE id = $2 AND question_id = $3`
		res, err := tx.ExecContext(ctx, query, idx, optionID, questionID)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return ErrNotFound
		}
	}

	return tx.Commit()
}

// DeleteOption removes an option. Options referenced by answers are protected
// by the answers FK.
func (r *PGRepo) DeleteOption(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM question_options WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrOptionInUse
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanJob(row rowScanner) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID,
		&job.PositionID,
		&job.Slug,
		&job.Title,
		&job.Description,
		&job.RequiresResume,
		&job.IsActive,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PGRepo) queryJobs(ctx context.Context, query string) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var qType string
	err := row.Scan(
		&q.ID,
		&q.JobID,
		&q.Label,
		&qType,
		&q.IsRequired,
		&q.IsActive,
		&q.Order,
		&q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrNotFound
		}
		return Question{}, err
	}
	q.Type = QuestionType(qType)
	return q, nil
}

func (r *PGRepo) attachQuestions(ctx context.Context, job *Job, activeOnly bool) error {
	query := `
SELECT id, job_id, label, type, is_required, is_active, ord, created_at
FROM questions
WHERE job_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY ord`

	rows, err := r.DB.QueryContext(ctx, query, job.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var questions []Question
	var ids []string
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return err
		}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(ids) > 0 {
		opts, err := r.queryOptions(ctx, ids, activeOnly)
		if err != nil {
			return err
		}
		for i := range questions {
			questions[i].Options = opts[questions[i].ID]
		}
	}

	job.Questions = questions
	return nil
}

func (r *PGRepo) queryOptions(ctx context.Context, questionIDs []string, activeOnly bool) (map[string][]QuestionOption, error) {
	placeholders := make([]string, len(questionIDs))
	args := make([]any, len(questionIDs))
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
SELECT id, question_id, label, order_index, is_active, created_at
FROM question_options
WHERE question_id IN (%s)`, strings.Join(placeholders, ", "))
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY question_id, order_index`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]QuestionOption)
	for rows.Next() {
		var opt QuestionOption
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Label, &opt.OrderIndex, &opt.IsActive, &opt.CreatedAt); err != nil {
			return nil, err
		}
		out[opt.QuestionID] = append(out[opt.QuestionID], opt)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
