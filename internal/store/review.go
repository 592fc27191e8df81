package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// reviewRepo implements ReviewRepo on the review_records table.
type reviewRepo struct {
	db *sql.DB
}

func (r *reviewRepo) SaveAll(ctx context.Context, records []ReviewRecordData) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save reviews: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		query, args := builder().Insert(tableReviewRecords).
			Columns("exercise_id", "last_review_date", "next_review_date", "interval_days", "rating", "review_count").
			Values(rec.ExerciseID, rec.LastReviewDate, rec.NextReviewDate, rec.Interval, rec.Rating, rec.ReviewCount).
			OnConflict(
				entsql.ConflictColumns("exercise_id"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert review %s: %w", rec.ExerciseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reviews: %w", err)
	}
	return nil
}

func (r *reviewRepo) LoadAll(ctx context.Context) ([]ReviewRecordData, error) {
	b := builder()
	query, args := b.Select("exercise_id", "last_review_date", "next_review_date", "interval_days", "rating", "review_count").
		From(b.Table(tableReviewRecords)).
		OrderBy("exercise_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []ReviewRecordData
	for rows.Next() {
		var rec ReviewRecordData
		if err := rows.Scan(&rec.ExerciseID, &rec.LastReviewDate, &rec.NextReviewDate,
			&rec.Interval, &rec.Rating, &rec.ReviewCount); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}
