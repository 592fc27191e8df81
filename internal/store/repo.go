package store

import (
	"context"
	"time"

	"github.com/abhisek/bhasha/internal/progress"
)

// SnapshotVersion is the current SnapshotData layout version.
const SnapshotVersion = 1

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	SkillID string // restrict to one skill ("" = all)
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version           int               `json:"version"`
	Profile           progress.Snapshot `json:"profile"`
	SessionsCompleted int               `json:"sessionsCompleted"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// ReviewRecordData is the persisted form of one spaced repetition record.
// Dates are ISO calendar dates (YYYY-MM-DD); LastReviewDate may be empty.
type ReviewRecordData struct {
	ExerciseID     string `json:"exerciseId"`
	LastReviewDate string `json:"lastReviewDate,omitempty"`
	NextReviewDate string `json:"nextReviewDate"`
	Interval       int    `json:"interval"`
	Rating         int    `json:"rating"`
	ReviewCount    int    `json:"reviewCount"`
}

// ReviewRepo persists spaced repetition records keyed by exercise id.
type ReviewRepo interface {
	// SaveAll upserts every record in a single transaction.
	SaveAll(ctx context.Context, records []ReviewRecordData) error

	// LoadAll returns every stored record ordered by exercise id.
	LoadAll(ctx context.Context) ([]ReviewRecordData, error)
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData captures a lesson start or completion.
type SessionEventData struct {
	SessionID       string
	Action          string
	SkillID         string
	ExercisesTotal  int
	ExercisesServed int
	XPEarned        int
	DurationSecs    int
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	SkillID       string
	ExerciseID    string
	Kind          string
	LearnerAnswer string
	Correct       bool
	Score         int
	XPEarned      int
	Feedback      string
}

// SessionSummaryRecord is a completed session joined with its answer stats.
type SessionSummaryRecord struct {
	Sequence        int64
	Timestamp       time.Time
	SessionID       string
	SkillID         string
	ExercisesServed int
	CorrectAnswers  int
	XPEarned        int
	DurationSecs    int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// SkillAccuracy returns the fraction of correct answers for a skill
	// and the number of answers it is based on.
	SkillAccuracy(ctx context.Context, skillID string) (float64, int, error)

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// LastSequence returns the highest sequence number assigned so far.
	LastSequence(ctx context.Context) (int64, error)
}
