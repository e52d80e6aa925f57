package jobs

import (
	"context"
	"errors"
	"testing"
)

type stubPositions struct {
	exists bool
}

func (s stubPositions) PositionExists(context.Context, string) (bool, error) {
	return s.exists, nil
}

type stubAnswers struct {
	answeredQuestions map[string]bool
	referencedOptions map[string]bool
}

func (s stubAnswers) QuestionAnswered(_ context.Context, id string) (bool, error) {
	return s.answeredQuestions[id], nil
}

func (s stubAnswers) OptionReferenced(_ context.Context, id string) (bool, error) {
	return s.referencedOptions[id], nil
}

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	return &Service{Repo: repo, Positions: stubPositions{exists: true}}, repo
}

func mustCreateJob(t *testing.T, svc *Service) Job {
	t.Helper()
	job, err := svc.CreateJob(context.Background(), CreateJobInput{
		PositionID: "pos_1",
		Slug:       "backend-engineer",
		Title:      "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	return job
}

func TestCreateJobRejectsBadSlug(t *testing.T) {
	svc, _ := newTestService(t)
	for _, slug := range []string{"", "Has Spaces", "UPPER", "trailing-", "-leading", "double--dash"} {
		_, err := svc.CreateJob(context.Background(), CreateJobInput{
			PositionID: "pos_1",
			Slug:       slug,
			Title:      "Backend Engineer",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("slug %q: got %v, want ErrInvalidInput", slug, err)
		}
	}
}

func TestCreateJobRejectsMissingPosition(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Positions: stubPositions{exists: false}}
	_, err := svc.CreateJob(context.Background(), CreateJobInput{
		PositionID: "pos_missing",
		Slug:       "backend-engineer",
		Title:      "Backend Engineer",
	})
	if !errors.Is(err, ErrPositionMissing) {
		t.Fatalf("got %v, want ErrPositionMissing", err)
	}
}

func TestCreateJobDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateJob(t, svc)
	_, err := svc.CreateJob(context.Background(), CreateJobInput{
		PositionID: "pos_1",
		Slug:       "backend-engineer",
		Title:      "Another Posting",
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("got %v, want ErrSlugTaken", err)
	}
}

func TestNewJobStartsInactive(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)
	if job.IsActive {
		t.Fatal("new job should start inactive")
	}
	if _, err := svc.GetActiveJob(context.Background(), job.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive job lookup: got %v, want ErrNotFound", err)
	}
}

func TestActiveJobCarriesOnlyActiveSchema(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)

	q1, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Why this role?", Type: TypeLongText, IsRequired: true, Order: 0,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	q2, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Preferred stack", Type: TypeMultipleChoice, Order: 1,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	opt1, err := svc.CreateOption(context.Background(), q2.ID, "Go", 0)
	if err != nil {
		t.Fatalf("CreateOption: %v", err)
	}
	opt2, err := svc.CreateOption(context.Background(), q2.ID, "Rust", 1)
	if err != nil {
		t.Fatalf("CreateOption: %v", err)
	}

	if err := svc.SetOptionActive(context.Background(), opt2.ID, false); err != nil {
		t.Fatalf("SetOptionActive: %v", err)
	}
	if _, err := svc.UpdateQuestion(context.Background(), q1.ID, UpdateQuestionInput{
		Label: q1.Label, IsRequired: true, IsActive: false, Order: 0,
	}); err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if err := svc.SetJobActive(context.Background(), job.ID, true); err != nil {
		t.Fatalf("SetJobActive: %v", err)
	}

	got, err := svc.GetActiveJob(context.Background(), job.Slug)
	if err != nil {
		t.Fatalf("GetActiveJob: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("active questions = %d, want 1", len(got.Questions))
	}
	if got.Questions[0].ID != q2.ID {
		t.Fatalf("surviving question = %s, want %s", got.Questions[0].ID, q2.ID)
	}
	if len(got.Questions[0].Options) != 1 || got.Questions[0].Options[0].ID != opt1.ID {
		t.Fatalf("active options = %+v, want only %s", got.Questions[0].Options, opt1.ID)
	}

	// The admin view still sees everything.
	full, err := svc.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if len(full.Questions) != 2 {
		t.Fatalf("admin questions = %d, want 2", len(full.Questions))
	}
}

func TestCreateQuestionDuplicateOrder(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)
	if _, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "First", Type: TypeShortText, Order: 0,
	}); err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	_, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Second", Type: TypeShortText, Order: 0,
	})
	if !errors.Is(err, ErrOrderTaken) {
		t.Fatalf("got %v, want ErrOrderTaken", err)
	}
}

func TestCreateOptionOnTextQuestion(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)
	q, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Free text", Type: TypeShortText, Order: 0,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if _, err := svc.CreateOption(context.Background(), q.ID, "Nope", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestReorderOptions(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)
	q, err := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Pick one", Type: TypeSingleChoice, Order: 0,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	a, _ := svc.CreateOption(context.Background(), q.ID, "A", 0)
	b, _ := svc.CreateOption(context.Background(), q.ID, "B", 1)
	c, _ := svc.CreateOption(context.Background(), q.ID, "C", 2)

	if err := svc.ReorderOptions(context.Background(), q.ID, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("ReorderOptions: %v", err)
	}

	got, err := svc.Repo.GetQuestionByID(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("GetQuestionByID: %v", err)
	}
	wantOrder := []string{c.ID, a.ID, b.ID}
	for i, opt := range got.Options {
		if opt.ID != wantOrder[i] || opt.OrderIndex != i {
			t.Fatalf("option %d = %s (index %d), want %s (index %d)", i, opt.ID, opt.OrderIndex, wantOrder[i], i)
		}
	}
}

func TestReorderOptionsRejectsPartialSet(t *testing.T) {
	svc, _ := newTestService(t)
	job := mustCreateJob(t, svc)
	q, _ := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Pick one", Type: TypeSingleChoice, Order: 0,
	})
	a, _ := svc.CreateOption(context.Background(), q.ID, "A", 0)
	if _, err := svc.CreateOption(context.Background(), q.ID, "B", 1); err != nil {
		t.Fatalf("CreateOption: %v", err)
	}

	cases := map[string][]string{
		"subset":    {a.ID},
		"duplicate": {a.ID, a.ID},
		"stranger":  {a.ID, "opt_unknown"},
	}
	for name, ids := range cases {
		if err := svc.ReorderOptions(context.Background(), q.ID, ids); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestDeleteGuards(t *testing.T) {
	svc, repo := newTestService(t)
	job := mustCreateJob(t, svc)
	q, _ := svc.CreateQuestion(context.Background(), job.ID, CreateQuestionInput{
		Label: "Pick one", Type: TypeSingleChoice, Order: 0,
	})
	opt, _ := svc.CreateOption(context.Background(), q.ID, "A", 0)

	repo.SetAnswerChecker(stubAnswers{
		answeredQuestions: map[string]bool{q.ID: true},
		referencedOptions: map[string]bool{opt.ID: true},
	})

	if err := svc.DeleteOption(context.Background(), opt.ID); !errors.Is(err, ErrOptionInUse) {
		t.Fatalf("DeleteOption: got %v, want ErrOptionInUse", err)
	}
	if err := svc.DeleteQuestion(context.Background(), q.ID); !errors.Is(err, ErrQuestionInUse) {
		t.Fatalf("DeleteQuestion: got %v, want ErrQuestionInUse", err)
	}
	if err := svc.DeleteJob(context.Background(), job.ID); !errors.Is(err, ErrJobInUse) {
		t.Fatalf("DeleteJob: got %v, want ErrJobInUse", err)
	}

	// Without any answers the chain deletes cleanly.
	repo.SetAnswerChecker(stubAnswers{})
	if err := svc.DeleteOption(context.Background(), opt.ID); err != nil {
		t.Fatalf("DeleteOption: %v", err)
	}
	if err := svc.DeleteQuestion(context.Background(), q.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if err := svc.DeleteJob(context.Background(), job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
}
