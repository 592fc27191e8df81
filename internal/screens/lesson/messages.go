package lesson

// startLessonMsg asks the screen to start its lesson from the update loop,
// keeping every controller call on one goroutine.
type startLessonMsg struct{}

// phase is the screen's interaction state.
type phase int

const (
	phaseLoading phase = iota
	phaseAnswer
	phaseUngradable
	phaseFeedback
	phaseError
)

// inputMode selects the answer widget for the current exercise.
type inputMode int

const (
	inputNone inputMode = iota
	inputChoice
	inputText
	inputTiles
	inputCharacters
)
