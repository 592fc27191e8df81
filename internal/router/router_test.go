package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bhasha/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	resumed int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type resumingScreen struct{ stubScreen }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

func titles(r *Router) string {
	if r.Active() == nil {
		return ""
	}
	return r.Active().Title()
}

func TestNavigation(t *testing.T) {
	home := &stubScreen{title: "home"}
	lesson := &stubScreen{title: "lesson"}
	summary := &stubScreen{title: "summary"}

	r := New(home)
	r.Update(PushScreenMsg{Screen: lesson})
	if r.Depth() != 2 || titles(r) != "lesson" || !lesson.initRan {
		t.Fatalf("after push: depth=%d active=%q init=%v", r.Depth(), titles(r), lesson.initRan)
	}

	r.Update(ReplaceScreenMsg{Screen: summary})
	if r.Depth() != 2 || titles(r) != "summary" || !summary.initRan {
		t.Fatalf("after replace: depth=%d active=%q init=%v", r.Depth(), titles(r), summary.initRan)
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || titles(r) != "home" {
		t.Fatalf("after pop: depth=%d active=%q", r.Depth(), titles(r))
	}

	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("pop at bottom changed depth to %d", r.Depth())
	}
}

func TestPopResumesExposedScreen(t *testing.T) {
	home := &resumingScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "lesson"})
	r.Pop()
	r.Pop()
	if home.resumed != 1 {
		t.Errorf("resumed = %d, want 1", home.resumed)
	}
}

func TestViewRendersActive(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "history"})
	if got := r.View(80, 24); got != "history" {
		t.Errorf("View = %q, want history", got)
	}
}
