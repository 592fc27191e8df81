package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screen"
	"github.com/abhisek/bhasha/internal/screens/home"
	"github.com/abhisek/bhasha/internal/screens/lesson"
	"github.com/abhisek/bhasha/internal/session"
	"github.com/abhisek/bhasha/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ctrl    *session.Controller
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates an AppModel on the home screen. A non-empty
// startSkill opens a lesson for that skill straight away.
func newAppModel(deps home.Deps, startSkill string) AppModel {
	m := AppModel{
		router: router.New(home.New(deps)),
		ctrl:   deps.Controller,
	}
	if startSkill != "" {
		name := startSkill
		if sk, ok := deps.Catalog.Skill(startSkill); ok {
			name = sk.Name
		}
		seq := session.PlanLesson(deps.Catalog, startSkill, deps.Controller.Scheduler(), deps.Plan)
		m.initCmd = m.router.Push(lesson.New(deps.Controller, deps.Collector, startSkill, name, seq))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.ctrl.Active() {
				m.ctrl.EndLesson()
			}
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				return m, bh.HandleBack()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	profile := m.ctrl.Profile()
	header := layout.RenderHeader(title, profile.CurrentXP, profile.Streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, hp.KeyHints()...)
		footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(deps home.Deps, startSkill string) error {
	p := tea.NewProgram(newAppModel(deps, startSkill))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
