package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGCreateJobMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "jobs_slug_key"})

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	err = repo.CreateJob(context.Background(), Job{
		ID:         "job_1",
		PositionID: "pos_1",
		Slug:       "backend-engineer",
		Title:      "Backend Engineer",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("got %v, want ErrSlugTaken", err)
	}
}

func TestPGDeleteOptionMapsForeignKeyViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM question_options").
		WithArgs("opt_1").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "answers_question_option_id_fkey"})

	repo := &PGRepo{DB: db}
	if err := repo.DeleteOption(context.Background(), "opt_1"); !errors.Is(err, ErrOptionInUse) {
		t.Fatalf("got %v, want ErrOptionInUse", err)
	}
}

func TestPGReorderOptionsDefersConstraints(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("SET CONSTRAINTS ALL DEFERRED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE question_options SET order_index").
		WithArgs(0, "opt_b", "qst_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE question_options SET order_index").
		WithArgs(1, "opt_a", "qst_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.ReorderOptions(context.Background(), "qst_1", []string{"opt_b", "opt_a"}); err != nil {
		t.Fatalf("ReorderOptions: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGGetJobByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("job_missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "position_id", "slug", "title", "description",
			"requires_resume", "is_active", "created_at", "updated_at",
		}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetJobByID(context.Background(), "job_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
