package session

import (
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
	"github.com/abhisek/bhasha/internal/spacedrep"
)

// Event type names.
const (
	EventLessonStarted   = "lesson.started"
	EventExerciseChanged = "exercise.changed"
	EventProgressUpdated = "progress.updated"
	EventAnswerGraded    = "answer.graded"
	EventProfileUpdated  = "profile.updated"
	EventLessonCompleted = "lesson.completed"
	EventReviewScheduled = "review.scheduled"
)

// Event is a notification published by the controller.
type Event interface {
	// EventType returns the type name of this event.
	EventType() string
	// OccurredAt returns when this event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	Type      string
	Timestamp time.Time
	SessionID string
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// LessonStarted is published when a lesson begins.
type LessonStarted struct {
	BaseEvent
	SkillID string
	Total   int
}

// ExerciseChanged is published after a new exercise becomes current.
type ExerciseChanged struct {
	BaseEvent
	Exercise exercise.Exercise
	Gradable bool
}

// ProgressUpdated reports how many exercises of the lesson have been served.
type ProgressUpdated struct {
	BaseEvent
	Completed int
	Total     int
}

// AnswerGraded carries the verdict for a submitted answer, with the earned
// XP already appended to the feedback of a correct answer.
type AnswerGraded struct {
	BaseEvent
	Result     grading.Result
	ExerciseID string
	SkillID    string
	Kind       exercise.Kind
	Answer     string
	XP         int
}

// ProfileUpdated reports the learner's XP and streak after an answer.
type ProfileUpdated struct {
	BaseEvent
	CurrentXP int
	Streak    int
}

// LessonCompleted is published when a lesson with at least one served
// exercise ends.
type LessonCompleted struct {
	BaseEvent
	SkillID            string
	TotalXP            int
	ExercisesCompleted int
	Duration           time.Duration
}

// ReviewScheduled is published after the learner rates an exercise.
type ReviewScheduled struct {
	BaseEvent
	ExerciseID string
	Rating     spacedrep.Rating
	Interval   int
	NextReview civil.Date
}

// EventHandler processes controller events.
type EventHandler func(event Event)

// EventDispatcher manages event subscriptions and publishing. Handlers run
// synchronously, in registration order, on the publishing goroutine.
type EventDispatcher struct {
	mu          sync.RWMutex
	nextID      int
	handlers    map[string][]subscription
	allHandlers []subscription
	logger      *slog.Logger
}

type subscription struct {
	id      int
	handler EventHandler
}

// NewEventDispatcher creates a new event dispatcher.
func NewEventDispatcher(logger *slog.Logger) *EventDispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EventDispatcher{
		handlers: make(map[string][]subscription),
		logger:   logger,
	}
}

// Subscribe registers a handler for a specific event type and returns a
// function that removes it.
func (d *EventDispatcher) Subscribe(eventType string, handler EventHandler) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.handlers[eventType] = append(d.handlers[eventType], subscription{id: id, handler: handler})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.handlers[eventType] = without(d.handlers[eventType], id)
	}
}

// SubscribeAll registers a handler for all event types and returns a
// function that removes it.
func (d *EventDispatcher) SubscribeAll(handler EventHandler) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.allHandlers = append(d.allHandlers, subscription{id: id, handler: handler})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.allHandlers = without(d.allHandlers, id)
	}
}

func without(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Publish dispatches an event to all registered handlers. A panicking
// handler is logged and skipped.
func (d *EventDispatcher) Publish(event Event) {
	d.mu.RLock()
	subs := append([]subscription(nil), d.handlers[event.EventType()]...)
	subs = append(subs, d.allHandlers...)
	d.mu.RUnlock()

	for _, s := range subs {
		d.call(s.handler, event)
	}
}

func (d *EventDispatcher) call(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked", "event", event.EventType(), "panic", r)
		}
	}()
	h(event)
}
