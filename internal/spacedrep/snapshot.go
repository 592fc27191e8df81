package spacedrep

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/abhisek/bhasha/internal/store"
)

// SnapshotData exports every review record for persistence.
func (s *Scheduler) SnapshotData() []store.ReviewRecordData {
	all := s.All()
	rows := make([]store.ReviewRecordData, len(all))
	for i, rec := range all {
		rows[i] = store.ReviewRecordData{
			ExerciseID:     rec.ExerciseID,
			LastReviewDate: formatDate(rec.LastReviewDate),
			NextReviewDate: formatDate(rec.NextReviewDate),
			Interval:       rec.Interval,
			Rating:         int(rec.Rating),
			ReviewCount:    rec.ReviewCount,
		}
	}
	return rows
}

// LoadSnapshot replaces the scheduler's records with rows. Rows that fail
// to parse are skipped and reported together in the returned error.
func (s *Scheduler) LoadSnapshot(rows []store.ReviewRecordData) error {
	s.reviews = make(map[string]*ReviewRecord, len(rows))

	var errs []error
	for _, row := range rows {
		rec, err := recordFromData(row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.reviews[rec.ExerciseID] = rec
	}
	return errors.Join(errs...)
}

func recordFromData(row store.ReviewRecordData) (*ReviewRecord, error) {
	if row.ExerciseID == "" {
		return nil, fmt.Errorf("review record with empty exercise id")
	}
	last, err := parseDate(row.LastReviewDate)
	if err != nil {
		return nil, fmt.Errorf("review %s: last review date: %w", row.ExerciseID, err)
	}
	next, err := civil.ParseDate(row.NextReviewDate)
	if err != nil {
		return nil, fmt.Errorf("review %s: next review date: %w", row.ExerciseID, err)
	}
	rating := Rating(row.Rating)
	if !rating.Valid() {
		rating = Medium
	}
	return &ReviewRecord{
		ExerciseID:     row.ExerciseID,
		LastReviewDate: last,
		NextReviewDate: next,
		Interval:       max(row.Interval, InitialIntervalDays),
		Rating:         rating,
		ReviewCount:    max(row.ReviewCount, 0),
	}, nil
}

func formatDate(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.String()
}

func parseDate(s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	return civil.ParseDate(s)
}
