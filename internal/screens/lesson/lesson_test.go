package lesson

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screens/summary"
	"github.com/abhisek/bhasha/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCatalog(t *testing.T) *exercise.Catalog {
	t.Helper()
	c := exercise.NewCatalog()
	add := func(ex exercise.Exercise) {
		if _, err := c.Add(ex); err != nil {
			t.Fatalf("add %s: %v", ex.ID, err)
		}
	}
	add(exercise.NewMultipleChoice(exercise.Header{ID: "m1", Prompt: "Which word means water?", SkillID: "basics"},
		[]string{"khana", "pani", "ghar"}, 1))
	add(exercise.NewTranslate(exercise.Header{ID: "t1", SkillID: "basics"},
		exercise.Translation{SourcePhrase: "water", Accepted: []string{"pani"}, TargetLanguage: "Nepali"}))
	add(exercise.NewTileOrder(exercise.Header{ID: "o1", Prompt: "I eat food", SkillID: "food"},
		[]string{"khanchu", "ma", "khana"}, []string{"ma", "khana", "khanchu"}))
	add(exercise.Exercise{ID: "a1", Kind: "Audio", Prompt: "Listen", SkillID: "audio", Difficulty: 1})
	return c
}

type fixture struct {
	ctrl      *session.Controller
	collector *session.SummaryCollector
	catalog   *exercise.Catalog
}

func newFixture(t *testing.T) fixture {
	ctrl := session.NewController(nil)
	return fixture{ctrl: ctrl, collector: session.NewSummaryCollector(ctrl), catalog: testCatalog(t)}
}

func (f fixture) start(t *testing.T, skillID string) *LessonScreen {
	t.Helper()
	s := New(f.ctrl, f.collector, skillID, "", f.catalog.SequenceForSkill(skillID))
	s.Update(s.Init()())
	return s
}

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestLessonScreen_ChoiceThenTranslate(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "basics")

	if s.phase != phaseAnswer || s.mode != inputChoice {
		t.Fatalf("phase=%v mode=%v, want answer/choice", s.phase, s.mode)
	}
	if s.Title() != "basics" {
		t.Errorf("Title = %q, want skill id fallback", s.Title())
	}

	s.Update(keyPress('2'))
	if s.phase != phaseFeedback || !s.result.Correct {
		t.Fatalf("after '2': phase=%v result=%+v", s.phase, s.result)
	}
	if !strings.Contains(s.View(100, 30), "pani") {
		t.Error("feedback view should mention the answer")
	}

	s.Update(keyPress('3'))
	if rec, ok := f.ctrl.Scheduler().Record("m1"); !ok || rec.Interval != 7 {
		t.Errorf("review record = %+v, %v; want interval 7", rec, ok)
	}
	if !strings.Contains(s.noticeMsg, "7 days") {
		t.Errorf("notice = %q", s.noticeMsg)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.mode != inputText || s.current.ID != "t1" {
		t.Fatalf("second exercise: mode=%v id=%s", s.mode, s.current.ID)
	}

	// Empty input is not submitted.
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseAnswer {
		t.Fatalf("empty submit changed phase to %v", s.phase)
	}

	s.input.Model.SetValue("Pani")
	s.Update(specialKey(tea.KeyEnter))
	if !s.result.Correct {
		t.Fatalf("translation result = %+v", s.result)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	msg, ok := run(cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("end of lesson msg = %T, want ReplaceScreenMsg", run(cmd))
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement = %T, want summary", msg.Screen)
	}
	if f.ctrl.Active() || f.ctrl.SessionsCompleted() != 1 {
		t.Errorf("active=%v completed=%d", f.ctrl.Active(), f.ctrl.SessionsCompleted())
	}
}

func TestLessonScreen_Tiles(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "food")
	if s.mode != inputTiles {
		t.Fatalf("mode = %v, want tiles", s.mode)
	}

	for _, word := range []string{"ma", "khana", "khanchu"} {
		for i, tile := range s.picker.Bank {
			if tile == word {
				s.Update(keyPress(rune('1' + i)))
				break
			}
		}
	}
	s.Update(specialKey(tea.KeyEnter))
	if !s.result.Correct {
		t.Errorf("tile result = %+v", s.result)
	}
}

func TestLessonScreen_Ungradable(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "audio")
	if s.phase != phaseUngradable {
		t.Fatalf("phase = %v, want ungradable", s.phase)
	}
	if !strings.Contains(s.View(100, 30), "not supported") {
		t.Error("ungradable view missing notice")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if _, ok := run(cmd).(router.PopScreenMsg); !ok {
		t.Errorf("skip past last exercise = %T, want PopScreenMsg", run(cmd))
	}
}

func TestLessonScreen_EmptySequence(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "missing")
	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := run(cmd).(router.PopScreenMsg); !ok {
		t.Errorf("any key on error = %T, want PopScreenMsg", run(cmd))
	}
}

func TestLessonScreen_HandleBack(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "basics")

	// Nothing answered: back simply pops.
	if _, ok := run(s.HandleBack()).(router.PopScreenMsg); !ok {
		t.Error("back before answering should pop")
	}
	if f.ctrl.Active() {
		t.Error("lesson still active after back")
	}

	s = f.start(t, "basics")
	s.Update(keyPress('1'))
	if _, ok := run(s.HandleBack()).(router.ReplaceScreenMsg); !ok {
		t.Error("back after answering should show the summary")
	}
}

func TestLessonScreen_KeyHints(t *testing.T) {
	f := newFixture(t)
	s := f.start(t, "basics")
	if len(s.KeyHints()) != 4 {
		t.Errorf("choice hints = %d, want 4", len(s.KeyHints()))
	}
	s.Update(keyPress('1'))
	if hints := s.KeyHints(); hints[0].Key != "1/2/3" {
		t.Errorf("feedback hints = %+v", hints)
	}
}
