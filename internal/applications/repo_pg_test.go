package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func pgAppFixture() Application {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return Application{
		ID:        "app_1",
		JobID:     "job_1",
		CreatedAt: now,
		UpdatedAt: now,
		Answers: []Answer{
			{ID: "ans_1", ApplicationID: "app_1", QuestionID: "qst_1", TextValue: str("Jane Doe"), CreatedAt: now},
			{ID: "ans_2", ApplicationID: "app_1", QuestionID: "qst_2", QuestionOptionID: str("opt_aa"), CreatedAt: now},
		},
	}
}

func TestPGCreateCommitsHeaderAndAnswersTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	app := pgAppFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WithArgs(app.ID, app.JobID, nil, app.CreatedAt, app.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO answers").
		WithArgs("ans_1", app.ID, "qst_1", nil, "Jane Doe", app.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO answers").
		WithArgs("ans_2", app.ID, "qst_2", "opt_aa", nil, app.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGCreateRollsBackOnAnswerFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	app := pgAppFixture()
	boom := errors.New("constraint violation")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO answers").
		WillReturnError(boom)
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), app); !errors.Is(err, boom) {
		t.Fatalf("Create: got %v, want %v", err, boom)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs("app_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "resume_url", "created_at", "updated_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "app_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
