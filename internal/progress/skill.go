package progress

// Mastery adjustments per graded answer.
const (
	MasteryGain    = 5
	MasteryPenalty = 2
	MaxMastery     = 100
)

// SkillProgress tracks per-skill mastery and attempt counters.
type SkillProgress struct {
	MasteryLevel       int
	ExercisesCompleted int
	TotalExercises     int
	CorrectAnswers     int
	IncorrectAnswers   int
}

// RecordResult applies one graded answer. Mastery moves by +5 or -2 and
// stays within [0, 100].
func (sp *SkillProgress) RecordResult(correct bool) {
	sp.ExercisesCompleted++
	if correct {
		sp.CorrectAnswers++
		sp.MasteryLevel = min(sp.MasteryLevel+MasteryGain, MaxMastery)
	} else {
		sp.IncorrectAnswers++
		sp.MasteryLevel = max(sp.MasteryLevel-MasteryPenalty, 0)
	}
}

// SetTotalExercises records how many exercises the skill offers.
func (sp *SkillProgress) SetTotalExercises(n int) {
	sp.TotalExercises = max(n, 0)
}

// Accuracy returns the percentage of correct answers, 0 with no attempts.
func (sp *SkillProgress) Accuracy() float64 {
	attempts := sp.CorrectAnswers + sp.IncorrectAnswers
	if attempts == 0 {
		return 0
	}
	return float64(sp.CorrectAnswers) / float64(attempts) * 100
}

// CompletionPercent returns ExercisesCompleted as a share of TotalExercises,
// capped at 100.
func (sp *SkillProgress) CompletionPercent() float64 {
	if sp.TotalExercises == 0 {
		return 0
	}
	return min(float64(sp.ExercisesCompleted)/float64(sp.TotalExercises)*100, 100)
}

func clampMastery(m int) int {
	return min(max(m, 0), MaxMastery)
}
