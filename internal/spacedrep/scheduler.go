package spacedrep

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// ErrInvalidRating is returned when scheduling with an unknown rating.
var ErrInvalidRating = errors.New("invalid review rating")

// Scheduler manages spaced repetition review scheduling, keyed by exercise id.
type Scheduler struct {
	reviews map[string]*ReviewRecord
	today   func() civil.Date
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithToday overrides how the scheduler determines the current date.
func WithToday(today func() civil.Date) Option {
	return func(s *Scheduler) {
		if today != nil {
			s.today = today
		}
	}
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		reviews: make(map[string]*ReviewRecord),
		today:   func() civil.Date { return civil.DateOf(time.Now()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the scheduler's notion of the current date.
func (s *Scheduler) Today() civil.Date {
	return s.today()
}

// RecordCompletion marks the first time an exercise is answered. It creates
// a one-day record and never touches an existing one.
func (s *Scheduler) RecordCompletion(exerciseID string) {
	if _, ok := s.reviews[exerciseID]; ok {
		return
	}
	today := s.today()
	s.reviews[exerciseID] = &ReviewRecord{
		ExerciseID:     exerciseID,
		LastReviewDate: today,
		NextReviewDate: today.AddDays(InitialIntervalDays),
		Interval:       InitialIntervalDays,
		Rating:         Medium,
		ReviewCount:    1,
	}
}

// ScheduleNextReview applies the learner's rating and moves the next review
// date out by the grown interval.
func (s *Scheduler) ScheduleNextReview(exerciseID string, rating Rating) (ReviewRecord, error) {
	if !rating.Valid() {
		return ReviewRecord{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	rec := s.reviews[exerciseID]
	if rec == nil {
		rec = &ReviewRecord{
			ExerciseID: exerciseID,
			Interval:   InitialIntervalDays,
			Rating:     Medium,
		}
		s.reviews[exerciseID] = rec
	}

	rec.Interval = NextInterval(rec.Interval, rating)
	rec.ReviewCount++
	rec.LastReviewDate = s.today()
	rec.NextReviewDate = rec.LastReviewDate.AddDays(rec.Interval)
	rec.Rating = rating
	return *rec, nil
}

// IsDueForReview reports whether a record exists and is due today.
func (s *Scheduler) IsDueForReview(exerciseID string) bool {
	rec := s.reviews[exerciseID]
	return rec != nil && rec.IsDue(s.today())
}

// ReviewQueue returns the ids of all exercises due today, sorted by id.
func (s *Scheduler) ReviewQueue() []string {
	today := s.today()
	var due []string
	for id, rec := range s.reviews {
		if rec.IsDue(today) {
			due = append(due, id)
		}
	}
	sort.Strings(due)
	return due
}

// Record returns a copy of the record for an exercise.
func (s *Scheduler) Record(exerciseID string) (ReviewRecord, bool) {
	rec := s.reviews[exerciseID]
	if rec == nil {
		return ReviewRecord{}, false
	}
	return *rec, true
}

// All returns copies of every record, sorted by next review date then id.
func (s *Scheduler) All() []ReviewRecord {
	out := make([]ReviewRecord, 0, len(s.reviews))
	for _, rec := range s.reviews {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].NextReviewDate.Compare(out[j].NextReviewDate); c != 0 {
			return c < 0
		}
		return out[i].ExerciseID < out[j].ExerciseID
	})
	return out
}

// Len returns the number of tracked exercises.
func (s *Scheduler) Len() int {
	return len(s.reviews)
}
