package session

import (
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
	"github.com/abhisek/bhasha/internal/progress"
	"github.com/abhisek/bhasha/internal/spacedrep"
)

// Controller drives one lesson at a time: it serves exercises from a
// sequence, grades answers, and feeds results into the learner profile and
// the review scheduler. It is not safe for concurrent use.
type Controller struct {
	profile *progress.Profile
	srs     *spacedrep.Scheduler
	events  *EventDispatcher
	logger  *slog.Logger
	clock   progress.Clock
	newID   func() string

	// Session state, reset by EndLesson.
	active     bool
	sessionID  string
	skillID    string
	seq        *exercise.Sequence
	current    exercise.Exercise
	hasCurrent bool
	strategy   grading.Strategy
	served     int
	sessionXP  int
	startedAt  time.Time

	sessionsCompleted int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used for timestamps and for profiles the
// controller creates itself.
func WithClock(clock progress.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithScheduler supplies an existing review scheduler.
func WithScheduler(s *spacedrep.Scheduler) Option {
	return func(c *Controller) {
		c.srs = s
	}
}

// WithSessionIDs overrides session id generation.
func WithSessionIDs(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithSessionsCompleted restores the lifetime completed-session counter.
func WithSessionsCompleted(n int) Option {
	return func(c *Controller) {
		c.sessionsCompleted = max(n, 0)
	}
}

// NewController creates an idle controller for profile. A nil profile is
// replaced by a fresh one. Unless a scheduler is supplied, the controller
// creates one that shares the profile's notion of today.
func NewController(profile *progress.Profile, opts ...Option) *Controller {
	c := &Controller{
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if profile == nil {
		profile = progress.NewProfile(progress.WithClock(c.clock))
	}
	c.profile = profile
	if c.srs == nil {
		c.srs = spacedrep.NewScheduler(spacedrep.WithToday(c.today))
	}
	c.events = NewEventDispatcher(c.logger)
	return c
}

func (c *Controller) today() civil.Date {
	return c.profile.Today()
}

// Events returns the dispatcher used to subscribe to controller events.
func (c *Controller) Events() *EventDispatcher {
	return c.events
}

// Subscribe registers handler for every event. It is shorthand for
// Events().SubscribeAll.
func (c *Controller) Subscribe(handler EventHandler) (unsubscribe func()) {
	return c.events.SubscribeAll(handler)
}

func (c *Controller) base(eventType string) BaseEvent {
	return BaseEvent{Type: eventType, Timestamp: c.clock(), SessionID: c.sessionID}
}

// StartLesson begins a lesson for skillID over seq. An active lesson is
// ended first. An empty sequence leaves the controller idle.
func (c *Controller) StartLesson(skillID string, seq *exercise.Sequence) error {
	if c.active {
		c.EndLesson()
	}
	if seq.Len() == 0 {
		c.logger.Warn("refusing to start lesson", "skill_id", skillID, "error", ErrEmptySequence)
		return ErrEmptySequence
	}

	c.active = true
	c.sessionID = c.newID()
	c.skillID = skillID
	c.seq = seq
	c.sessionXP = 0
	c.served = 0
	c.startedAt = c.clock()
	if skillID != ReviewSkillID {
		c.profile.Skill(skillID).SetTotalExercises(skillSize(seq, skillID))
	}

	c.logger.Info("lesson started", "session_id", c.sessionID, "skill_id", skillID, "exercises", seq.Len())
	c.events.Publish(LessonStarted{BaseEvent: c.base(EventLessonStarted), SkillID: skillID, Total: seq.Len()})

	// A selection error leaves the first exercise loaded and the lesson active.
	return c.LoadNextExercise()
}

// skillSize counts the exercises the skill offers in the sequence's catalog.
// A lesson may be a trimmed or reordered slice of them.
func skillSize(seq *exercise.Sequence, skillID string) int {
	if cat := seq.Catalog(); cat != nil {
		if n := len(cat.ExercisesForSkill(skillID)); n > 0 {
			return n
		}
	}
	return seq.Len()
}

// LoadNextExercise makes the exercise at the cursor current. When the
// sequence is exhausted the lesson ends and ErrNoMoreExercises is returned.
// An exercise with no grading strategy is still loaded, and the selection
// error is returned.
func (c *Controller) LoadNextExercise() error {
	if !c.active || !c.seq.HasNext() {
		c.EndLesson()
		return ErrNoMoreExercises
	}

	c.strategy = grading.StrategyNone
	ref, _ := c.seq.Next()
	ex, ok := c.seq.Exercise(ref)
	if !ok {
		c.hasCurrent = false
		c.logger.Error("sequence references unknown exercise", "session_id", c.sessionID, "ref", int(ref))
		return fmt.Errorf("exercise ref %d: %w", ref, ErrNoActiveExercise)
	}
	c.current = ex
	c.hasCurrent = true

	strategy, selErr := grading.Select(ex)
	if selErr != nil {
		c.logger.Error("no grading strategy", "exercise_id", ex.ID, "kind", string(ex.Kind), "error", selErr)
	} else {
		c.strategy = strategy
	}

	c.served = c.seq.Position()
	c.events.Publish(ProgressUpdated{BaseEvent: c.base(EventProgressUpdated), Completed: c.served, Total: c.seq.Len()})
	c.events.Publish(ExerciseChanged{BaseEvent: c.base(EventExerciseChanged), Exercise: ex, Gradable: selErr == nil})
	return selErr
}

// SubmitAnswer grades answer against the current exercise and applies the
// outcome to the profile and review scheduler.
func (c *Controller) SubmitAnswer(answer string) (grading.Result, error) {
	if !c.hasCurrent {
		c.logger.Warn("answer submitted without exercise", "error", ErrNoActiveExercise)
		return grading.Result{}, ErrNoActiveExercise
	}
	if c.strategy == grading.StrategyNone {
		c.logger.Warn("answer submitted for ungradable exercise", "exercise_id", c.current.ID, "error", ErrUngradable)
		return grading.Result{}, fmt.Errorf("exercise %s: %w", c.current.ID, ErrUngradable)
	}

	ex := c.current
	result := grading.Grade(c.strategy, answer, ex)
	xp := CalculateXP(result, ex.Difficulty)
	c.sessionXP += xp

	c.profile.AddXP(xp)
	c.profile.UpdateStreak()
	c.profile.Skill(ex.SkillID).RecordResult(result.Correct)
	c.events.Publish(ProfileUpdated{
		BaseEvent: c.base(EventProfileUpdated),
		CurrentXP: c.profile.CurrentXP,
		Streak:    c.profile.Streak,
	})

	c.srs.RecordCompletion(ex.ID)

	if result.Correct {
		result.Feedback += fmt.Sprintf(" (+%d XP)", xp)
	}

	c.logger.Debug("answer graded", "exercise_id", ex.ID, "correct", result.Correct, "xp", xp)
	c.events.Publish(AnswerGraded{
		BaseEvent:  c.base(EventAnswerGraded),
		Result:     result,
		ExerciseID: ex.ID,
		SkillID:    ex.SkillID,
		Kind:       ex.Kind,
		Answer:     answer,
		XP:         xp,
	})
	return result, nil
}

// EndLesson finishes the current lesson. Completion is counted and
// published only if at least one exercise was served; the controller
// always returns to idle.
func (c *Controller) EndLesson() {
	if c.active && c.served > 0 {
		c.sessionsCompleted++
		duration := c.clock().Sub(c.startedAt)
		c.logger.Info("lesson completed", "session_id", c.sessionID, "skill_id", c.skillID,
			"xp", c.sessionXP, "served", c.served)
		c.events.Publish(LessonCompleted{
			BaseEvent:          c.base(EventLessonCompleted),
			SkillID:            c.skillID,
			TotalXP:            c.sessionXP,
			ExercisesCompleted: c.served,
			Duration:           duration,
		})
	}

	c.active = false
	c.sessionID = ""
	c.skillID = ""
	c.seq = nil
	c.current = exercise.Exercise{}
	c.hasCurrent = false
	c.strategy = grading.StrategyNone
	c.served = 0
	c.sessionXP = 0
	c.startedAt = time.Time{}
}

// ScheduleReview applies the learner's difficulty rating to the current
// exercise's review schedule.
func (c *Controller) ScheduleReview(rating spacedrep.Rating) error {
	if !c.hasCurrent {
		c.logger.Warn("review scheduled without exercise", "error", ErrNoActiveExercise)
		return ErrNoActiveExercise
	}
	rec, err := c.srs.ScheduleNextReview(c.current.ID, rating)
	if err != nil {
		c.logger.Warn("schedule review", "exercise_id", c.current.ID, "error", err)
		return err
	}
	c.events.Publish(ReviewScheduled{
		BaseEvent:  c.base(EventReviewScheduled),
		ExerciseID: rec.ExerciseID,
		Rating:     rec.Rating,
		Interval:   rec.Interval,
		NextReview: rec.NextReviewDate,
	})
	return nil
}

// Reset ends any lesson, replaces the profile with a fresh one and clears
// the completed-session counter. Review records are kept.
func (c *Controller) Reset() {
	c.EndLesson()
	c.profile = progress.NewProfile(progress.WithClock(c.clock))
	c.sessionsCompleted = 0
}

// Active reports whether a lesson is in progress.
func (c *Controller) Active() bool { return c.active }

// Current returns the current exercise, if any.
func (c *Controller) Current() (exercise.Exercise, bool) {
	return c.current, c.hasCurrent
}

// Progress returns exercises served and the lesson length.
func (c *Controller) Progress() (served, total int) {
	return c.served, c.seq.Len()
}

// SessionXP returns XP earned in the current lesson.
func (c *Controller) SessionXP() int { return c.sessionXP }

// SessionID returns the current lesson's id, "" when idle.
func (c *Controller) SessionID() string { return c.sessionID }

// SkillID returns the current lesson's skill, "" when idle.
func (c *Controller) SkillID() string { return c.skillID }

// SessionsCompleted returns the lifetime number of completed lessons.
func (c *Controller) SessionsCompleted() int { return c.sessionsCompleted }

// Profile returns the learner profile.
func (c *Controller) Profile() *progress.Profile { return c.profile }

// Scheduler returns the review scheduler.
func (c *Controller) Scheduler() *spacedrep.Scheduler { return c.srs }
