package grading

import (
	"fmt"

	"github.com/abhisek/bhasha/internal/exercise"
)

// PointsCorrect is the score awarded by every strategy for a correct answer.
const PointsCorrect = 10

// ErrUnknownKind is returned when no strategy exists for an exercise kind.
var ErrUnknownKind = exercise.ErrUnknownKind

// Result is the verdict for one submitted answer.
type Result struct {
	Correct  bool
	Score    int
	Feedback string
}

// Strategy names a grading algorithm.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyMultipleChoice
	StrategyTranslate
	StrategyTileOrder
	StrategyCharacterSelect
)

// String returns the grader name used in feedback.
func (s Strategy) String() string {
	switch s {
	case StrategyMultipleChoice:
		return "MCQGrader"
	case StrategyTranslate:
		return "TranslateGrader"
	case StrategyTileOrder:
		return "TileOrderGrader"
	case StrategyCharacterSelect:
		return "CharacterSelectionGrader"
	}
	return "NoGrader"
}

// Select picks the strategy for an exercise. Translate exercises in
// character-selection mode use the character strategy.
func Select(ex exercise.Exercise) (Strategy, error) {
	switch ex.Kind {
	case exercise.KindMultipleChoice:
		return StrategyMultipleChoice, nil
	case exercise.KindTileOrder:
		return StrategyTileOrder, nil
	case exercise.KindTranslate:
		if ex.UsesCharacterSelection() {
			return StrategyCharacterSelect, nil
		}
		return StrategyTranslate, nil
	case exercise.KindCharacterSelect:
		return StrategyCharacterSelect, nil
	}
	return StrategyNone, fmt.Errorf("%w: %q", ErrUnknownKind, ex.Kind)
}

// Grade runs strategy s against answer. A strategy handed an exercise it
// does not understand fails the answer with an explanatory message.
func Grade(s Strategy, answer string, ex exercise.Exercise) Result {
	switch s {
	case StrategyMultipleChoice:
		return gradeChoice(answer, ex)
	case StrategyTranslate:
		return gradeTranslate(answer, ex)
	case StrategyTileOrder:
		return gradeTiles(answer, ex)
	case StrategyCharacterSelect:
		return gradeCharacters(answer, ex)
	}
	return wrongKind(s)
}

func wrongKind(s Strategy) Result {
	return Result{Feedback: "Error: Invalid exercise type for " + s.String()}
}

func verdict(correct bool, feedback string) Result {
	r := Result{Correct: correct, Feedback: feedback}
	if correct {
		r.Score = PointsCorrect
	}
	return r
}
