package spacedrep

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Rating is the learner's self-assessed difficulty for a review.
type Rating int

const (
	Hard   Rating = 1
	Medium Rating = 2
	Easy   Rating = 3
)

// String returns the lower-case rating name.
func (r Rating) String() string {
	switch r {
	case Hard:
		return "hard"
	case Medium:
		return "medium"
	case Easy:
		return "easy"
	}
	return fmt.Sprintf("rating(%d)", int(r))
}

// Valid reports whether r is one of Hard, Medium or Easy.
func (r Rating) Valid() bool {
	return r >= Hard && r <= Easy
}

// ParseRating accepts "hard", "medium", "easy" or "1".."3".
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard", "1":
		return Hard, nil
	case "medium", "2":
		return Medium, nil
	case "easy", "3":
		return Easy, nil
	}
	return 0, fmt.Errorf("unknown rating %q", s)
}

// ReviewRecord holds the spaced repetition state for a single exercise.
type ReviewRecord struct {
	ExerciseID     string
	LastReviewDate civil.Date
	NextReviewDate civil.Date
	Interval       int
	Rating         Rating
	ReviewCount    int
}

// IsDue returns true if the exercise is due on or after its review date.
func (r *ReviewRecord) IsDue(today civil.Date) bool {
	return !today.Before(r.NextReviewDate)
}

// OverdueDays returns how many days past due the record is. Returns 0 if not yet due.
func (r *ReviewRecord) OverdueDays(today civil.Date) int {
	if today.Before(r.NextReviewDate) {
		return 0
	}
	return today.DaysSince(r.NextReviewDate)
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (r *ReviewRecord) DaysUntilReview(today civil.Date) int {
	if r.IsDue(today) {
		return 0
	}
	return r.NextReviewDate.DaysSince(today)
}

// ReviewStatus describes a record's review status for display.
type ReviewStatus string

const (
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display. A record is overdue once
// it is more than half an interval past its review date.
func (r *ReviewRecord) Status(today civil.Date) ReviewStatus {
	if !r.IsDue(today) {
		return ReviewNotDue
	}
	grace := max(r.Interval/2, 1)
	if r.OverdueDays(today) > grace {
		return ReviewOverdue
	}
	return ReviewDue
}
