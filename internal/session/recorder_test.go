package session

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/bhasha/internal/store"
)

type fakeEventRepo struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	fail     error
}

func (f *fakeEventRepo) AppendSessionEvent(ctx context.Context, data store.SessionEventData) error {
	if f.fail != nil {
		return f.fail
	}
	f.sessions = append(f.sessions, data)
	return nil
}

func (f *fakeEventRepo) AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error {
	if f.fail != nil {
		return f.fail
	}
	f.answers = append(f.answers, data)
	return nil
}

func (f *fakeEventRepo) SkillAccuracy(ctx context.Context, skillID string) (float64, int, error) {
	return 0, 0, nil
}

func (f *fakeEventRepo) QuerySessionSummaries(ctx context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

func (f *fakeEventRepo) LastSequence(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestRecorderWritesLessonAndAnswers(t *testing.T) {
	c, _ := newTestController(t)
	repo := &fakeEventRepo{}
	NewRecorder(c, repo, nil, 0)
	cat := testCatalog(t)

	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	c.EndLesson()

	if len(repo.sessions) != 2 {
		t.Fatalf("session events = %d, want 2", len(repo.sessions))
	}
	start, end := repo.sessions[0], repo.sessions[1]
	if start.Action != store.SessionActionStart || start.ExercisesTotal != 2 || start.SessionID != "s1" {
		t.Errorf("start = %+v", start)
	}
	if end.Action != store.SessionActionEnd || end.ExercisesServed != 1 || end.XPEarned != 20 || end.ExercisesTotal != 2 {
		t.Errorf("end = %+v", end)
	}

	if len(repo.answers) != 1 {
		t.Fatalf("answer events = %d, want 1", len(repo.answers))
	}
	a := repo.answers[0]
	if a.ExerciseID != "m1" || a.Kind != "MCQ" || !a.Correct || a.LearnerAnswer != "1" || a.XPEarned != 20 {
		t.Errorf("answer = %+v", a)
	}
}

func TestRecorderSwallowsWriteErrors(t *testing.T) {
	c, events := newTestController(t)
	NewRecorder(c, &fakeEventRepo{fail: errors.New("disk full")}, nil, 0)
	cat := testCatalog(t)

	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Profile().CurrentXP != 20 || len(*events) == 0 {
		t.Errorf("controller affected by failing recorder")
	}
}
