package spacedrep

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
)

// testClock is a movable "today" for scheduler tests.
type testClock struct {
	day civil.Date
}

func (c *testClock) today() civil.Date { return c.day }

func newTestScheduler() (*Scheduler, *testClock) {
	clk := &testClock{day: jan1}
	return NewScheduler(WithToday(clk.today)), clk
}

func TestRecordCompletionFirstTouchOnly(t *testing.T) {
	s, clk := newTestScheduler()

	s.RecordCompletion("ex1")
	rec, ok := s.Record("ex1")
	if !ok {
		t.Fatal("expected record after completion")
	}
	if rec.Interval != 1 || rec.ReviewCount != 1 {
		t.Errorf("interval=%d count=%d, want 1/1", rec.Interval, rec.ReviewCount)
	}
	if rec.NextReviewDate != jan1.AddDays(1) {
		t.Errorf("NextReviewDate = %v, want %v", rec.NextReviewDate, jan1.AddDays(1))
	}

	clk.day = jan1.AddDays(10)
	s.RecordCompletion("ex1")
	again, _ := s.Record("ex1")
	if again != rec {
		t.Errorf("RecordCompletion modified existing record: %+v", again)
	}
}

func TestScheduleNextReviewEasyGrowth(t *testing.T) {
	s, _ := newTestScheduler()
	s.RecordCompletion("ex1")

	want := []int{7, 14, 28, 56}
	prev := 1
	for i, w := range want {
		rec, err := s.ScheduleNextReview("ex1", Easy)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if rec.Interval != w {
			t.Errorf("step %d: interval = %d, want %d", i, rec.Interval, w)
		}
		if rec.Interval < prev {
			t.Errorf("step %d: interval decreased %d -> %d", i, prev, rec.Interval)
		}
		prev = rec.Interval
	}

	rec, _ := s.Record("ex1")
	if rec.ReviewCount != 5 {
		t.Errorf("ReviewCount = %d, want 5", rec.ReviewCount)
	}
	if rec.Rating != Easy {
		t.Errorf("Rating = %v, want easy", rec.Rating)
	}
	if rec.LastReviewDate != jan1 || rec.NextReviewDate != jan1.AddDays(56) {
		t.Errorf("dates = %v -> %v", rec.LastReviewDate, rec.NextReviewDate)
	}
}

func TestScheduleNextReviewHardNeverShrinks(t *testing.T) {
	s, _ := newTestScheduler()
	if _, err := s.ScheduleNextReview("ex1", Medium); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		rec, _ := s.ScheduleNextReview("ex1", Hard)
		if rec.Interval != 3 {
			t.Errorf("hard step %d: interval = %d, want 3", i, rec.Interval)
		}
	}

	fresh, _ := s.ScheduleNextReview("ex2", Hard)
	if fresh.Interval != 1 || fresh.ReviewCount != 1 {
		t.Errorf("fresh hard = %+v, want interval 1 count 1", fresh)
	}
}

func TestScheduleNextReviewInvalidRating(t *testing.T) {
	s, _ := newTestScheduler()
	_, err := s.ScheduleNextReview("ex1", Rating(0))
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("err = %v, want ErrInvalidRating", err)
	}
	if s.Len() != 0 {
		t.Error("invalid rating should not create a record")
	}
}

func TestReviewQueue(t *testing.T) {
	s, clk := newTestScheduler()
	s.RecordCompletion("b")
	s.RecordCompletion("a")
	s.ScheduleNextReview("c", Easy)

	if q := s.ReviewQueue(); len(q) != 0 {
		t.Errorf("queue on day 0 = %v, want empty", q)
	}
	if s.IsDueForReview("a") {
		t.Error("a should not be due on day 0")
	}
	if s.IsDueForReview("missing") {
		t.Error("unknown id should not be due")
	}

	clk.day = jan1.AddDays(1)
	if q := strings.Join(s.ReviewQueue(), ","); q != "a,b" {
		t.Errorf("queue on day 1 = %q, want a,b", q)
	}
	if !s.IsDueForReview("a") {
		t.Error("a should be due on day 1")
	}

	clk.day = jan1.AddDays(7)
	if q := strings.Join(s.ReviewQueue(), ","); q != "a,b,c" {
		t.Errorf("queue on day 7 = %q, want a,b,c", q)
	}
}

func TestAllSortedByNextReview(t *testing.T) {
	s, _ := newTestScheduler()
	s.ScheduleNextReview("late", Easy)
	s.RecordCompletion("soon")

	all := s.All()
	if len(all) != 2 || all[0].ExerciseID != "soon" || all[1].ExerciseID != "late" {
		t.Errorf("All() order = %+v", all)
	}
}
