package lesson

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screen"
	"github.com/abhisek/bhasha/internal/screens/summary"
	"github.com/abhisek/bhasha/internal/session"
	"github.com/abhisek/bhasha/internal/spacedrep"
	"github.com/abhisek/bhasha/internal/ui/components"
	"github.com/abhisek/bhasha/internal/ui/layout"
)

// LessonScreen runs one lesson through the session controller.
type LessonScreen struct {
	ctrl      *session.Controller
	collector *session.SummaryCollector
	skillID   string
	skillName string
	seq       *exercise.Sequence
	rng       *rand.Rand

	phase     phase
	mode      inputMode
	current   exercise.Exercise
	choice    components.MultiChoice
	input     components.TextInput
	picker    components.Picker
	result    grading.Result
	rated     spacedrep.Rating
	errMsg    string
	noticeMsg string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a lesson screen for seq. The lesson starts when the screen
// is initialised. collector may be nil, in which case no summary is shown.
func New(ctrl *session.Controller, collector *session.SummaryCollector, skillID, skillName string, seq *exercise.Sequence) *LessonScreen {
	if skillName == "" {
		skillName = skillID
	}
	return &LessonScreen{
		ctrl:      ctrl,
		collector: collector,
		skillID:   skillID,
		skillName: skillName,
		seq:       seq,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return func() tea.Msg { return startLessonMsg{} }
}

func (s *LessonScreen) Title() string {
	return s.skillName
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "1/2/3", Description: "Hard/Medium/Easy"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "End lesson"},
		}
	case phaseUngradable:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Skip"},
			{Key: "Esc", Description: "End lesson"},
		}
	case phaseAnswer:
		switch s.mode {
		case inputChoice:
			return []layout.KeyHint{
				{Key: "1-9", Description: "Choose"},
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "End lesson"},
			}
		case inputTiles, inputCharacters:
			return []layout.KeyHint{
				{Key: "1-9", Description: "Pick"},
				{Key: "Backspace", Description: "Undo"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "End lesson"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End lesson"},
		}
	}
	return nil
}

// HandleBack ends the lesson early. A lesson with answers shows its summary.
func (s *LessonScreen) HandleBack() tea.Cmd {
	if s.ctrl.Active() {
		s.ctrl.EndLesson()
	}
	return s.finish()
}

func (s *LessonScreen) finish() tea.Cmd {
	if s.collector != nil {
		if sum := s.collector.Summary(); sum.TotalQuestions > 0 {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary.New(sum, s.skillName)}
			}
		}
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startLessonMsg:
		return s, s.start()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswer && s.mode == inputText {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) start() tea.Cmd {
	err := s.ctrl.StartLesson(s.skillID, s.seq)
	if errors.Is(err, session.ErrEmptySequence) {
		s.phase = phaseError
		s.errMsg = "No exercises available for this lesson."
		return nil
	}
	return s.load(err)
}

// load prepares the widgets for the controller's current exercise. selErr
// is the error returned when the exercise was loaded.
func (s *LessonScreen) load(selErr error) tea.Cmd {
	s.result = grading.Result{}
	s.rated = 0
	s.noticeMsg = ""

	ex, ok := s.ctrl.Current()
	if !ok {
		s.phase = phaseError
		s.errMsg = "Lesson could not be loaded."
		return nil
	}
	s.current = ex

	if selErr != nil {
		s.phase = phaseUngradable
		s.mode = inputNone
		return nil
	}

	s.phase = phaseAnswer
	switch {
	case ex.Kind == exercise.KindMultipleChoice:
		s.mode = inputChoice
		s.choice = components.NewMultiChoice(ex.Choice.Options)
	case ex.UsesCharacterSelection():
		s.mode = inputCharacters
		bank := exercise.CharacterBank(ex.Translation.Canonical(), ex.Translation.CharacterSet,
			exercise.DefaultDistractors, s.rng)
		s.picker = components.NewPicker(bank, true)
	case ex.Kind == exercise.KindTileOrder:
		s.mode = inputTiles
		bank := append([]string(nil), ex.Tiles.Tiles...)
		s.rng.Shuffle(len(bank), func(i, j int) { bank[i], bank[j] = bank[j], bank[i] })
		s.picker = components.NewPicker(bank, false)
	default:
		s.mode = inputText
		s.input = components.NewTextInput("Type your answer...", 80)
		return s.input.Init()
	}
	return nil
}

func (s *LessonScreen) next() tea.Cmd {
	err := s.ctrl.LoadNextExercise()
	if errors.Is(err, session.ErrNoMoreExercises) {
		return s.finish()
	}
	return s.load(err)
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseError:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case phaseUngradable:
		if key == "enter" {
			return s, s.next()
		}
		return s, nil

	case phaseFeedback:
		switch key {
		case "1", "2", "3":
			if s.rated == 0 {
				s.rate(key)
			}
			return s, nil
		case "enter", "space":
			return s, s.next()
		}
		return s, nil

	case phaseAnswer:
		return s.handleAnswerKey(msg, key)
	}
	return s, nil
}

func (s *LessonScreen) handleAnswerKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch s.mode {
	case inputChoice:
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			s.submit(strconv.Itoa(s.choice.Selected))
		}
		return s, nil

	case inputTiles, inputCharacters:
		if key == "enter" {
			if !s.picker.Empty() {
				s.submit(s.picker.Answer(grading.Separator))
			}
			return s, nil
		}
		s.picker, _ = s.picker.Update(msg)
		return s, nil

	case inputText:
		if key == "enter" {
			if s.input.Value() != "" {
				s.submit(s.input.Value())
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) submit(answer string) {
	result, err := s.ctrl.SubmitAnswer(answer)
	if err != nil {
		s.phase = phaseError
		s.errMsg = err.Error()
		return
	}
	s.result = result
	s.phase = phaseFeedback

	switch s.mode {
	case inputChoice:
		s.choice.Reveal(s.current.Choice.CorrectIndex)
	case inputText:
		s.input.Submit(result.Correct)
	}
}

func (s *LessonScreen) rate(key string) {
	rating, err := spacedrep.ParseRating(key)
	if err != nil {
		return
	}
	if err := s.ctrl.ScheduleReview(rating); err != nil {
		s.noticeMsg = err.Error()
		return
	}
	s.rated = rating
	if rec, ok := s.ctrl.Scheduler().Record(s.current.ID); ok {
		s.noticeMsg = fmt.Sprintf("Marked %s. Next review in %d days.", rating, rec.Interval)
	}
}
