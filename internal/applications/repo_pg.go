package applications

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create writes the application header and all answer rows in one
// transaction. Any constraint violation rolls the whole submission back.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertApp = `
INSERT INTO applications (id, job_id, resume_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertApp,
		app.ID, app.JobID, app.ResumeURL, app.CreatedAt, app.UpdatedAt,
	); err != nil {
		return err
	}

	const insertAnswer = `
INSERT INTO answers (id, application_id, question_id, question_option_id, text_value, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, ans := range app.Answers {
		if _, err := tx.ExecContext(ctx, insertAnswer,
			ans.ID, app.ID, ans.QuestionID, ans.QuestionOptionID, ans.TextValue, ans.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID returns an application with its answers, each annotated with its
// question label and, for option references, the option label.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	const appQuery = `
SELECT id, job_id, resume_url, created_at, updated_at
FROM applications
WHERE id = $1`
	var app Application
	err := r.DB.QueryRowContext(ctx, appQuery, id).Scan(
		&app.ID, &app.JobID, &app.ResumeURL, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}

	const answerQuery = `
SELECT a.id, a.application_id, a.question_id, a.question_option_id, a.text_value, a.created_at,
       q.label, o.label
FROM answers a
JOIN questions q ON q.id = a.question_id
LEFT JOIN question_options o ON o.id = a.question_option_id
WHERE a.application_id = $1
ORDER BY q.ord, a.id`
	rows, err := r.DB.QueryContext(ctx, answerQuery, id)
	if err != nil {
		return Application{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var ans Answer
		if err := rows.Scan(
			&ans.ID, &ans.ApplicationID, &ans.QuestionID, &ans.QuestionOptionID,
			&ans.TextValue, &ans.CreatedAt, &ans.QuestionLabel, &ans.OptionLabel,
		); err != nil {
			return Application{}, err
		}
		app.Answers = append(app.Answers, ans)
	}
	if err := rows.Err(); err != nil {
		return Application{}, err
	}
	return app, nil
}

// ListByJob returns application headers for a job, newest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	const query = `
SELECT id, job_id, resume_url, created_at, updated_at
FROM applications
WHERE job_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.ResumeURL, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// QuestionAnswered reports whether any answer row references the question.
func (r *PGRepo) QuestionAnswered(ctx context.Context, questionID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM answers WHERE question_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, questionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// OptionReferenced reports whether any answer row references the option.
func (r *PGRepo) OptionReferenced(ctx context.Context, optionID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM answers WHERE question_option_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, optionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ Repo = (*PGRepo)(nil)
