package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screen"
	"github.com/abhisek/bhasha/internal/screens/history"
	"github.com/abhisek/bhasha/internal/screens/lesson"
	"github.com/abhisek/bhasha/internal/session"
	"github.com/abhisek/bhasha/internal/store"
	"github.com/abhisek/bhasha/internal/ui/components"
)

// Deps holds what the home screen needs to start lessons.
type Deps struct {
	Controller *session.Controller
	Catalog    *exercise.Catalog
	Collector  *session.SummaryCollector
	Plan       session.PlanOptions
	Events     store.EventRepo // nil hides History
}

// HomeScreen lists the skills and entry points of the application.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

// refresh rebuilds the menu and stats from the controller's current state.
func (h *HomeScreen) refresh() {
	ctrl := h.deps.Controller
	profile := ctrl.Profile()
	profile.CheckStreakValidity()
	due := len(ctrl.Scheduler().ReviewQueue())

	h.stats = stats{
		XP:         profile.CurrentXP,
		Streak:     profile.Streak,
		ReviewsDue: due,
		Lessons:    ctrl.SessionsCompleted(),
	}

	var items []components.MenuItem
	for _, sk := range h.deps.Catalog.Skills() {
		detail := "new"
		if profile.HasSkill(sk.ID) {
			sp := profile.Skill(sk.ID)
			detail = fmt.Sprintf("mastery %d%%  %d answered", sp.MasteryLevel, sp.ExercisesCompleted)
		}
		items = append(items, components.MenuItem{
			Label:  sk.Name,
			Detail: detail,
			Action: func() tea.Cmd { return h.startLesson(sk) },
		})
	}

	items = append(items, components.MenuItem{
		Label:    "REVIEW",
		Detail:   fmt.Sprintf("%d due", due),
		Disabled: due == 0,
		Action:   h.startReview,
	})
	if h.deps.Events != nil {
		items = append(items, components.MenuItem{
			Label: "HISTORY",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.deps.Events)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "QUIT",
		Action: func() tea.Cmd { return tea.Quit },
	})

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) startLesson(sk exercise.Skill) tea.Cmd {
	seq := session.PlanLesson(h.deps.Catalog, sk.ID, h.deps.Controller.Scheduler(), h.deps.Plan)
	scr := lesson.New(h.deps.Controller, h.deps.Collector, sk.ID, sk.Name, seq)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (h *HomeScreen) startReview() tea.Cmd {
	seq := session.PlanReview(h.deps.Catalog, h.deps.Controller.Scheduler(), h.deps.Plan.MaxExercises)
	scr := lesson.New(h.deps.Controller, h.deps.Collector, session.ReviewSkillID, "Review", seq)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes mastery and review counts after a lesson.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := height+8 < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{
		renderTitle(h.deps.Controller.Profile().SelectedLanguage, cw, compact),
		renderStatsBar(h.stats, cw, compact),
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
