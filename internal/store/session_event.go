package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "action", "skill_id",
			"exercises_total", "exercises_served", "xp_earned", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Action, data.SkillID,
			data.ExercisesTotal, data.ExercisesServed, data.XPEarned, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "skill_id", "exercise_id", "kind",
			"learner_answer", "correct", "score", "xp_earned", "feedback").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.SkillID, data.ExerciseID, data.Kind,
			data.LearnerAnswer, data.Correct, data.Score, data.XPEarned, data.Feedback).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SkillAccuracy(ctx context.Context, skillID string) (float64, int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*"), "COALESCE("+entsql.Sum("correct")+", 0)").
		From(b.Table(tableAnswerEvents)).
		Where(entsql.EQ("skill_id", skillID)).
		Query()

	var total, correct int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &correct); err != nil {
		return 0, 0, fmt.Errorf("query skill accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("action", SessionActionEnd)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.SkillID != "" {
		preds = append(preds, entsql.EQ("skill_id", opts.SkillID))
	}
	sel := b.Select("sequence", "timestamp", "session_id", "skill_id", "exercises_served", "xp_earned", "duration_secs").
		From(b.Table(tableSessionEvents)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	var out []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ms  int64
		)
		if err := rows.Scan(&rec.Sequence, &ms, &rec.SessionID, &rec.SkillID,
			&rec.ExercisesServed, &rec.XPEarned, &rec.DurationSecs); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	// Release the connection before the per-session count queries.
	rows.Close()

	for i := range out {
		correct, err := r.correctAnswers(ctx, out[i].SessionID)
		if err != nil {
			return nil, err
		}
		out[i].CorrectAnswers = correct
	}
	return out, nil
}

func (r *eventRepo) correctAnswers(ctx context.Context, sessionID string) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(tableAnswerEvents)).
		Where(entsql.And(entsql.EQ("session_id", sessionID), entsql.EQ("correct", true))).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count correct answers: %w", err)
	}
	return n, nil
}
