package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/bhasha/internal/store"
)

// DefaultWriteTimeout bounds each event write.
const DefaultWriteTimeout = 2 * time.Second

// Recorder persists lesson and answer events to the event log. Write
// failures are logged and never reach the controller.
type Recorder struct {
	repo    store.EventRepo
	logger  *slog.Logger
	timeout time.Duration
	total   map[string]int
}

// NewRecorder subscribes a recorder to c. A non-positive timeout uses
// DefaultWriteTimeout.
func NewRecorder(c *Controller, repo store.EventRepo, logger *slog.Logger, timeout time.Duration) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	r := &Recorder{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
		total:   make(map[string]int),
	}
	d := c.Events()
	d.Subscribe(EventLessonStarted, r.handle)
	d.Subscribe(EventAnswerGraded, r.handle)
	d.Subscribe(EventLessonCompleted, r.handle)
	return r
}

func (r *Recorder) handle(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var err error
	switch e := ev.(type) {
	case LessonStarted:
		r.total[e.SessionID] = e.Total
		err = r.repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      e.SessionID,
			Action:         store.SessionActionStart,
			SkillID:        e.SkillID,
			ExercisesTotal: e.Total,
		})
	case AnswerGraded:
		err = r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     e.SessionID,
			SkillID:       e.SkillID,
			ExerciseID:    e.ExerciseID,
			Kind:          string(e.Kind),
			LearnerAnswer: e.Answer,
			Correct:       e.Result.Correct,
			Score:         e.Result.Score,
			XPEarned:      e.XP,
			Feedback:      e.Result.Feedback,
		})
	case LessonCompleted:
		total := r.total[e.SessionID]
		delete(r.total, e.SessionID)
		err = r.repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       e.SessionID,
			Action:          store.SessionActionEnd,
			SkillID:         e.SkillID,
			ExercisesTotal:  total,
			ExercisesServed: e.ExercisesCompleted,
			XPEarned:        e.TotalXP,
			DurationSecs:    int(e.Duration.Seconds()),
		})
	default:
		return
	}
	if err != nil {
		r.logger.Error("record event", "event", ev.EventType(), "error", err)
	}
}
