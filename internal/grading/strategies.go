package grading

import (
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/abhisek/bhasha/internal/exercise"
)

// Separator joins tiles and characters in a submitted answer.
const Separator = ";"

// MaxTypoDistance is the largest edit distance accepted for a translation.
const MaxTypoDistance = 2

func gradeChoice(answer string, ex exercise.Exercise) Result {
	if ex.Kind != exercise.KindMultipleChoice || ex.Choice == nil {
		return wrongKind(StrategyMultipleChoice)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || idx < 0 {
		return Result{Feedback: "Error: Invalid answer format"}
	}

	correctText := ex.Choice.CorrectOption()
	if idx == ex.Choice.CorrectIndex {
		return verdict(true, "Correct! The answer is: "+correctText)
	}
	return verdict(false, "Incorrect. The correct answer is: "+correctText)
}

func gradeTranslate(answer string, ex exercise.Exercise) Result {
	if ex.Kind != exercise.KindTranslate || ex.Translation == nil {
		return wrongKind(StrategyTranslate)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Result{Feedback: "Please enter a translation"}
	}

	if MatchesTranslation(answer, ex.Translation.Accepted) {
		return verdict(true, "Correct! Well done!")
	}
	return verdict(false, "Incorrect. Correct answer: "+ex.Translation.Canonical())
}

// MatchesTranslation applies exact, case-insensitive, then fuzzy matching
// of answer against each accepted form.
func MatchesTranslation(answer string, accepted []string) bool {
	for _, a := range accepted {
		if answer == a {
			return true
		}
	}
	for _, a := range accepted {
		if strings.EqualFold(answer, a) {
			return true
		}
	}
	lower := strings.ToLower(answer)
	for _, a := range accepted {
		if levenshtein.Distance(lower, strings.ToLower(a), nil) <= MaxTypoDistance {
			return true
		}
	}
	return false
}

func gradeCharacters(answer string, ex exercise.Exercise) Result {
	if !ex.UsesCharacterSelection() || ex.Translation == nil {
		return wrongKind(StrategyCharacterSelect)
	}

	built := strings.ReplaceAll(answer, Separator, "")
	if built == "" {
		return Result{Feedback: "Please select all characters."}
	}

	for _, a := range ex.Translation.Accepted {
		if built == a {
			return verdict(true, "Correct!")
		}
	}
	return verdict(false, "Incorrect sequence. Please try again.")
}

func gradeTiles(answer string, ex exercise.Exercise) Result {
	if ex.Kind != exercise.KindTileOrder || ex.Tiles == nil {
		return wrongKind(StrategyTileOrder)
	}

	var picked []string
	for _, tile := range strings.Split(strings.TrimSpace(answer), Separator) {
		if tile != "" {
			picked = append(picked, tile)
		}
	}
	if len(picked) == 0 {
		return Result{Feedback: "Please arrange the tiles to form your answer"}
	}

	if strings.Join(picked, " ") == strings.Join(ex.Tiles.CorrectOrder, " ") {
		return verdict(true, "Perfect! You arranged the words correctly!")
	}
	return verdict(false, "Not quite right. Correct order: "+strings.Join(ex.Tiles.CorrectOrder, " → "))
}
