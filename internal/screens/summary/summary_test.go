package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bhasha/internal/session"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		SessionID:      "s1",
		SkillID:        "basics-1",
		Duration:       3*time.Minute + 5*time.Second,
		TotalQuestions: 3,
		TotalCorrect:   2,
		Accuracy:       float64(2) / float64(3),
		XPEarned:       40,
		Served:         3,
		Answers: []session.AnswerResult{
			{ExerciseID: "b1", SkillID: "basics-1", Correct: true, XP: 20, Feedback: "Correct! The answer is: pani (+20 XP)"},
			{ExerciseID: "b2", SkillID: "basics-1", Correct: false, Feedback: "Incorrect. Correct answer: ghar"},
			{ExerciseID: "b3", SkillID: "basics-1", Correct: true, XP: 20, Feedback: "Correct! Well done! (+20 XP)"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), "Basics")
	if s.Title() != "Lesson Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lesson Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary(), "Basics").View(100, 30)
	for _, want := range []string{"Lesson complete!", "Basics", "3:05", "Accuracy: 67%", "+40 XP", "ghar"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	if got := New(nil, "").View(80, 24); got != "" {
		t.Errorf("View(nil) = %q, want empty", got)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSummary(), "Basics")
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Errorf("key %q: expected a pop command", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	hints := New(testSummary(), "").KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
