package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableSnapshots     = "snapshots"
	tableReviewRecords = "review_records"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

// eventColumns are shared by every event table: a global sequence number
// and a unix-millisecond timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}
}

func newEventTable(name string, cols ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).AddPrimary(idColumn())
	for _, c := range eventColumns() {
		t.AddColumn(c)
	}
	for _, c := range cols {
		t.AddColumn(c)
	}
	t.AddIndex(name+"_sequence", false, []string{"sequence"})
	t.AddIndex(name+"_timestamp", false, []string{"timestamp"})
	return t
}

// Tables returns the schema applied by auto-migration.
func Tables() []*schema.Table {
	snapshots := schema.NewTable(tableSnapshots).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "timestamp", Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: "data", Type: field.TypeString, Size: 1 << 20})
	snapshots.AddIndex("snapshots_timestamp", false, []string{"timestamp"})
	snapshots.AddIndex("snapshots_sequence", false, []string{"sequence"})

	reviews := schema.NewTable(tableReviewRecords).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "exercise_id", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "last_review_date", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "next_review_date", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "interval_days", Type: field.TypeInt, Default: 1}).
		AddColumn(&schema.Column{Name: "rating", Type: field.TypeInt, Default: 2}).
		AddColumn(&schema.Column{Name: "review_count", Type: field.TypeInt, Default: 0})
	reviews.AddIndex("review_records_exercise_id", true, []string{"exercise_id"})
	reviews.AddIndex("review_records_next_review_date", false, []string{"next_review_date"})

	sessions := newEventTable(tableSessionEvents,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "skill_id", Type: field.TypeString},
		&schema.Column{Name: "exercises_total", Type: field.TypeInt},
		&schema.Column{Name: "exercises_served", Type: field.TypeInt},
		&schema.Column{Name: "xp_earned", Type: field.TypeInt},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	)
	sessions.AddIndex("session_events_session_id", false, []string{"session_id"})

	answers := newEventTable(tableAnswerEvents,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "skill_id", Type: field.TypeString},
		&schema.Column{Name: "exercise_id", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString, Size: 4096},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "xp_earned", Type: field.TypeInt},
		&schema.Column{Name: "feedback", Type: field.TypeString, Size: 4096},
	)
	answers.AddIndex("answer_events_session_id", false, []string{"session_id"})
	answers.AddIndex("answer_events_skill_id", false, []string{"skill_id"})

	return []*schema.Table{snapshots, reviews, sessions, answers}
}
