package session

import (
	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
)

// DefaultBaseXP replaces a zero score on a correct answer.
const DefaultBaseXP = 10

// CalculateXP returns the XP earned for a graded answer: nothing when wrong,
// otherwise the score (or DefaultBaseXP when the score is 0) times the
// clamped difficulty.
func CalculateXP(result grading.Result, difficulty int) int {
	if !result.Correct {
		return 0
	}
	base := result.Score
	if base == 0 {
		base = DefaultBaseXP
	}
	return base * exercise.ClampDifficulty(difficulty)
}
