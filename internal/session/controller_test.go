package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
	"github.com/abhisek/bhasha/internal/progress"
	"github.com/abhisek/bhasha/internal/spacedrep"
)

var lessonStart = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances by one second on every reading.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func testCatalog(t *testing.T) *exercise.Catalog {
	t.Helper()
	c := exercise.NewCatalog()
	c.AddSkill(exercise.Skill{ID: "basics", Name: "Basics", Language: "Nepali"})
	for _, ex := range []exercise.Exercise{
		exercise.NewMultipleChoice(exercise.Header{ID: "m1", Prompt: "Water?", Difficulty: 2, SkillID: "basics"},
			[]string{"khana", "pani", "ghar"}, 1),
		exercise.NewTranslate(exercise.Header{ID: "t1", SkillID: "basics"},
			exercise.Translation{SourcePhrase: "water", Accepted: []string{"pani"}, TargetLanguage: "Nepali"}),
		exercise.NewTileOrder(exercise.Header{ID: "o1", SkillID: "food"},
			[]string{"ma", "bhat", "khanchhu"}, []string{"ma", "bhat", "khanchhu"}),
		{ID: "a1", Kind: exercise.Kind("Audio"), Difficulty: 1, SkillID: "audio"},
	} {
		if _, err := c.Add(ex); err != nil {
			t.Fatalf("add %s: %v", ex.ID, err)
		}
	}
	return c
}

func newTestController(t *testing.T) (*Controller, *[]Event) {
	t.Helper()
	clk := &stepClock{now: lessonStart}
	n := 0
	c := NewController(nil,
		WithClock(clk.Now),
		WithSessionIDs(func() string { n++; return fmt.Sprintf("s%d", n) }),
	)
	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })
	return c, &events
}

func eventTypes(events []Event) []string {
	var types []string
	for _, e := range events {
		types = append(types, e.EventType())
	}
	return types
}

func countType(events []Event, eventType string) int {
	n := 0
	for _, e := range events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

func TestStartLessonPublishesInOrder(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)

	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	want := []string{EventLessonStarted, EventProgressUpdated, EventExerciseChanged}
	if got := eventTypes(*events); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
	if !c.Active() || c.SessionID() != "s1" || c.SkillID() != "basics" {
		t.Errorf("active=%v session=%q skill=%q", c.Active(), c.SessionID(), c.SkillID())
	}
	ex, ok := c.Current()
	if !ok || ex.ID != "m1" {
		t.Errorf("current = %q, %v; want m1", ex.ID, ok)
	}
	if served, total := c.Progress(); served != 1 || total != 2 {
		t.Errorf("progress = %d/%d, want 1/2", served, total)
	}
	if got := c.Profile().Skill("basics").TotalExercises; got != 2 {
		t.Errorf("TotalExercises = %d, want 2", got)
	}

	started := (*events)[0].(LessonStarted)
	if started.Total != 2 || started.SessionID != "s1" {
		t.Errorf("LessonStarted = %+v", started)
	}
	changed := (*events)[2].(ExerciseChanged)
	if !changed.Gradable || changed.Exercise.ID != "m1" {
		t.Errorf("ExerciseChanged = %+v", changed)
	}
}

func TestSubmitCorrectMultipleChoice(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}

	res, err := c.SubmitAnswer("1")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.Correct || res.Score != grading.PointsCorrect {
		t.Errorf("result = %+v", res)
	}
	if res.Feedback != "Correct! The answer is: pani (+20 XP)" {
		t.Errorf("feedback = %q", res.Feedback)
	}
	p := c.Profile()
	if p.CurrentXP != 20 || c.SessionXP() != 20 {
		t.Errorf("xp profile=%d session=%d, want 20/20", p.CurrentXP, c.SessionXP())
	}
	if p.Streak != 1 {
		t.Errorf("streak = %d, want 1", p.Streak)
	}
	sp := p.Skill("basics")
	if sp.MasteryLevel != 5 || sp.CorrectAnswers != 1 || sp.ExercisesCompleted != 1 {
		t.Errorf("skill = %+v", *sp)
	}
	rec, ok := c.Scheduler().Record("m1")
	if !ok || rec.Interval != 1 {
		t.Errorf("review record = %+v, %v", rec, ok)
	}

	var graded AnswerGraded
	for _, e := range *events {
		if g, ok := e.(AnswerGraded); ok {
			graded = g
		}
	}
	if graded.XP != 20 || graded.ExerciseID != "m1" || graded.Answer != "1" {
		t.Errorf("AnswerGraded = %+v", graded)
	}
	if countType(*events, EventProfileUpdated) != 1 {
		t.Errorf("ProfileUpdated published %d times", countType(*events, EventProfileUpdated))
	}
}

func TestSubmitWrongAnswer(t *testing.T) {
	c, _ := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}

	res, err := c.SubmitAnswer("0")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Correct || strings.Contains(res.Feedback, "XP") {
		t.Errorf("result = %+v", res)
	}
	sp := c.Profile().Skill("basics")
	if c.Profile().CurrentXP != 0 || sp.MasteryLevel != 0 || sp.IncorrectAnswers != 1 {
		t.Errorf("xp=%d skill=%+v", c.Profile().CurrentXP, *sp)
	}
	if c.Profile().Streak != 1 {
		t.Errorf("streak = %d, want 1 after any answer", c.Profile().Streak)
	}
}

func TestLessonRunsToCompletion(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("submit m1: %v", err)
	}
	if err := c.LoadNextExercise(); err != nil {
		t.Fatalf("LoadNextExercise: %v", err)
	}
	if _, err := c.SubmitAnswer("Pani"); err != nil {
		t.Fatalf("submit t1: %v", err)
	}

	err := c.LoadNextExercise()
	if !errors.Is(err, ErrNoMoreExercises) {
		t.Fatalf("LoadNextExercise err = %v, want ErrNoMoreExercises", err)
	}
	if c.Active() {
		t.Error("lesson still active after exhaustion")
	}
	if _, ok := c.Current(); ok {
		t.Error("current exercise kept after end")
	}
	if c.SessionsCompleted() != 1 {
		t.Errorf("SessionsCompleted = %d, want 1", c.SessionsCompleted())
	}

	var done LessonCompleted
	for _, e := range *events {
		if lc, ok := e.(LessonCompleted); ok {
			done = lc
		}
	}
	if done.ExercisesCompleted != 2 || done.TotalXP != 40 || done.SkillID != "basics" {
		t.Errorf("LessonCompleted = %+v", done)
	}
	if done.Duration <= 0 {
		t.Errorf("duration = %v, want > 0", done.Duration)
	}
	if countType(*events, EventLessonCompleted) != 1 {
		t.Errorf("LessonCompleted published %d times", countType(*events, EventLessonCompleted))
	}

	// Further calls are harmless.
	if err := c.LoadNextExercise(); !errors.Is(err, ErrNoMoreExercises) {
		t.Errorf("second LoadNextExercise err = %v", err)
	}
	if c.SessionsCompleted() != 1 {
		t.Errorf("SessionsCompleted = %d after extra load", c.SessionsCompleted())
	}
}

func TestStartLessonEmptySequence(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)

	err := c.StartLesson("missing", cat.SequenceForSkill("missing"))
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("err = %v, want ErrEmptySequence", err)
	}
	if c.Active() || len(*events) != 0 {
		t.Errorf("active=%v events=%v", c.Active(), eventTypes(*events))
	}
	if c.Profile().HasSkill("missing") {
		t.Error("empty lesson touched the profile")
	}
}

func TestSubmitWithoutExercise(t *testing.T) {
	c, events := newTestController(t)
	_, err := c.SubmitAnswer("1")
	if !errors.Is(err, ErrNoActiveExercise) {
		t.Errorf("err = %v, want ErrNoActiveExercise", err)
	}
	if err := c.ScheduleReview(spacedrep.Easy); !errors.Is(err, ErrNoActiveExercise) {
		t.Errorf("ScheduleReview err = %v, want ErrNoActiveExercise", err)
	}
	if len(*events) != 0 || c.Profile().CurrentXP != 0 {
		t.Errorf("state changed: events=%v", eventTypes(*events))
	}
}

func TestUnknownKindIsUngradable(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)

	err := c.StartLesson("audio", cat.SequenceForSkill("audio"))
	if !errors.Is(err, grading.ErrUnknownKind) {
		t.Fatalf("StartLesson err = %v, want ErrUnknownKind", err)
	}
	if !c.Active() {
		t.Fatal("lesson should stay active")
	}
	ex, ok := c.Current()
	if !ok || ex.ID != "a1" {
		t.Fatalf("current = %q, %v", ex.ID, ok)
	}
	changed := (*events)[len(*events)-1].(ExerciseChanged)
	if changed.Gradable {
		t.Error("ExerciseChanged.Gradable = true for unknown kind")
	}

	_, err = c.SubmitAnswer("anything")
	if !errors.Is(err, ErrUngradable) {
		t.Errorf("SubmitAnswer err = %v, want ErrUngradable", err)
	}
	if c.Profile().HasSkill("audio") && c.Profile().Skill("audio").ExercisesCompleted != 0 {
		t.Error("ungradable answer recorded as attempt")
	}
	if countType(*events, EventAnswerGraded) != 0 {
		t.Error("AnswerGraded published for ungradable exercise")
	}
}

func TestStartLessonEndsActiveLesson(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)

	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("start basics: %v", err)
	}
	if err := c.StartLesson("food", cat.SequenceForSkill("food")); err != nil {
		t.Fatalf("start food: %v", err)
	}

	if c.SessionsCompleted() != 1 {
		t.Errorf("SessionsCompleted = %d, want 1", c.SessionsCompleted())
	}
	var completed []LessonCompleted
	for _, e := range *events {
		if lc, ok := e.(LessonCompleted); ok {
			completed = append(completed, lc)
		}
	}
	if len(completed) != 1 || completed[0].SessionID != "s1" || completed[0].SkillID != "basics" {
		t.Errorf("completed = %+v", completed)
	}
	if c.SessionID() != "s2" || c.SkillID() != "food" {
		t.Errorf("session=%q skill=%q", c.SessionID(), c.SkillID())
	}
}

func TestEndLessonIdleIsNoop(t *testing.T) {
	c, events := newTestController(t)
	c.EndLesson()
	if c.SessionsCompleted() != 0 || len(*events) != 0 {
		t.Errorf("completed=%d events=%v", c.SessionsCompleted(), eventTypes(*events))
	}
}

func TestScheduleReview(t *testing.T) {
	c, events := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := c.ScheduleReview(spacedrep.Easy); err != nil {
		t.Fatalf("ScheduleReview: %v", err)
	}

	last := (*events)[len(*events)-1]
	rs, ok := last.(ReviewScheduled)
	if !ok {
		t.Fatalf("last event = %s, want %s", last.EventType(), EventReviewScheduled)
	}
	if rs.ExerciseID != "m1" || rs.Interval != 7 || rs.Rating != spacedrep.Easy {
		t.Errorf("ReviewScheduled = %+v", rs)
	}
	today := c.Profile().Today()
	if rs.NextReview != today.AddDays(7) {
		t.Errorf("NextReview = %v, want %v", rs.NextReview, today.AddDays(7))
	}

	if err := c.ScheduleReview(spacedrep.Rating(9)); !errors.Is(err, spacedrep.ErrInvalidRating) {
		t.Errorf("invalid rating err = %v", err)
	}
}

func TestSchedulerFollowsSimulatedDate(t *testing.T) {
	c, _ := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if c.Scheduler().IsDueForReview("m1") {
		t.Fatal("m1 due on the day it was answered")
	}
	c.Profile().AdvanceSimulatedDate(1)
	if !c.Scheduler().IsDueForReview("m1") {
		t.Error("m1 not due one simulated day later")
	}
}

func TestReset(t *testing.T) {
	c, _ := newTestController(t)
	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := c.SubmitAnswer("1"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	c.Reset()
	if c.Active() {
		t.Error("still active after reset")
	}
	p := c.Profile()
	if p.CurrentXP != 0 || p.Streak != 0 || p.HasSkill("basics") {
		t.Errorf("profile not fresh: xp=%d streak=%d", p.CurrentXP, p.Streak)
	}
	if c.SessionsCompleted() != 0 {
		t.Errorf("SessionsCompleted = %d, want 0", c.SessionsCompleted())
	}
	if _, ok := c.Scheduler().Record("m1"); !ok {
		t.Error("review records dropped by reset")
	}
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	c, events := newTestController(t)
	c.Events().Subscribe(EventLessonStarted, func(Event) { panic("boom") })
	var after int
	c.Subscribe(func(Event) { after++ })

	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if after != 3 || len(*events) != 3 {
		t.Errorf("listeners saw %d/%d events, want 3/3", after, len(*events))
	}
}

func TestCalculateXP(t *testing.T) {
	tests := []struct {
		res        grading.Result
		difficulty int
		want       int
	}{
		{grading.Result{Correct: true, Score: 10}, 1, 10},
		{grading.Result{Correct: true, Score: 10}, 3, 30},
		{grading.Result{Correct: true}, 2, 20},
		{grading.Result{Correct: true, Score: 10}, 7, 30},
		{grading.Result{Correct: false, Score: 10}, 3, 0},
	}
	for _, tt := range tests {
		if got := CalculateXP(tt.res, tt.difficulty); got != tt.want {
			t.Errorf("CalculateXP(%+v, %d) = %d, want %d", tt.res, tt.difficulty, got, tt.want)
		}
	}
}

func TestNewControllerKeepsProfile(t *testing.T) {
	p := progress.NewProfile()
	p.AddXP(50)
	c := NewController(p, WithSessionsCompleted(4))
	if c.Profile() != p || c.SessionsCompleted() != 4 {
		t.Errorf("profile or counter not kept")
	}
}

func TestUnsubscribe(t *testing.T) {
	c, _ := newTestController(t)
	var seen int
	stop := c.Subscribe(func(Event) { seen++ })
	stopStarted := c.Events().Subscribe(EventLessonStarted, func(Event) { seen += 100 })
	stop()
	stopStarted()

	cat := testCatalog(t)
	if err := c.StartLesson("basics", cat.SequenceForSkill("basics")); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if seen != 0 {
		t.Errorf("unsubscribed handlers called: %d", seen)
	}
}

func TestTotalExercisesCountsWholeSkill(t *testing.T) {
	cat := exercise.NewCatalog()
	for i := range 30 {
		ex := exercise.NewMultipleChoice(exercise.Header{ID: fmt.Sprintf("w%d", i), SkillID: "words"},
			[]string{"x", "y"}, 0)
		if _, err := cat.Add(ex); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	c, _ := newTestController(t)
	seq := PlanLesson(cat, "words", nil, PlanOptions{MaxExercises: 10})
	if err := c.StartLesson("words", seq); err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	for {
		if _, err := c.SubmitAnswer("0"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if err := c.LoadNextExercise(); errors.Is(err, ErrNoMoreExercises) {
			break
		}
	}

	sp := c.Profile().Skill("words")
	if sp.TotalExercises != 30 || sp.ExercisesCompleted != 10 {
		t.Errorf("total=%d completed=%d, want 30/10", sp.TotalExercises, sp.ExercisesCompleted)
	}
	if got := sp.CompletionPercent(); got < 33 || got > 34 {
		t.Errorf("CompletionPercent = %.2f, want about 33.3", got)
	}
}
