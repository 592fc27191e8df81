package session

import (
	"sync"
	"time"
)

// AnswerResult is one graded answer as shown on the summary screen.
type AnswerResult struct {
	ExerciseID string
	SkillID    string
	Correct    bool
	XP         int
	Feedback   string
}

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	SkillID        string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	XPEarned       int
	Served         int
	Answers        []AnswerResult
}

// BuildSummary folds the events of one lesson into a SessionSummary.
// Events from other sessions are ignored once the first LessonStarted has
// fixed the session id.
func BuildSummary(events []Event) *SessionSummary {
	s := &SessionSummary{}
	var started time.Time
	for _, ev := range events {
		switch e := ev.(type) {
		case LessonStarted:
			if s.SessionID != "" && s.SessionID != e.SessionID {
				continue
			}
			s.SessionID = e.SessionID
			s.SkillID = e.SkillID
			started = e.Timestamp
		case ProgressUpdated:
			if e.SessionID == s.SessionID {
				s.Served = e.Completed
			}
		case AnswerGraded:
			if e.SessionID != s.SessionID {
				continue
			}
			s.TotalQuestions++
			if e.Result.Correct {
				s.TotalCorrect++
			}
			s.XPEarned += e.XP
			s.Answers = append(s.Answers, AnswerResult{
				ExerciseID: e.ExerciseID,
				SkillID:    e.SkillID,
				Correct:    e.Result.Correct,
				XP:         e.XP,
				Feedback:   e.Result.Feedback,
			})
		case LessonCompleted:
			if e.SessionID != s.SessionID {
				continue
			}
			s.Duration = e.Duration
			s.Served = e.ExercisesCompleted
		}
	}
	if s.Duration == 0 && len(events) > 0 && !started.IsZero() {
		s.Duration = events[len(events)-1].OccurredAt().Sub(started)
	}
	if s.TotalQuestions > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalQuestions)
	}
	return s
}

// SummaryCollector buffers the events of the most recent lesson.
type SummaryCollector struct {
	mu     sync.Mutex
	events []Event
}

// NewSummaryCollector creates a collector subscribed to c.
func NewSummaryCollector(c *Controller) *SummaryCollector {
	sc := &SummaryCollector{}
	c.Subscribe(sc.handle)
	return sc
}

func (sc *SummaryCollector) handle(ev Event) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if _, ok := ev.(LessonStarted); ok {
		sc.events = sc.events[:0]
	}
	sc.events = append(sc.events, ev)
}

// Summary builds a summary of the most recent lesson.
func (sc *SummaryCollector) Summary() *SessionSummary {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return BuildSummary(sc.events)
}
