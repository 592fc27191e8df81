// Package history lists past lessons from the event log.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screen"
	"github.com/abhisek/bhasha/internal/store"
	"github.com/abhisek/bhasha/internal/ui/layout"
	"github.com/abhisek/bhasha/internal/ui/theme"
)

// PageSize is the number of lessons loaded.
const PageSize = 50

type loadedMsg struct {
	records  []store.SessionSummaryRecord
	accuracy map[string]float64 // lifetime, by skill id
	err      error
}

// HistoryScreen shows recent lessons, newest first. Enter toggles a detail
// line under the highlighted row.
type HistoryScreen struct {
	events   store.EventRepo
	records  []store.SessionSummaryRecord
	accuracy map[string]float64
	cursor   int
	open     map[int]bool
	state    string // "loading", "ready" or the load error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a HistoryScreen reading from events.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{events: events, open: map[int]bool{}, state: "loading"}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		ctx := context.Background()
		records, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: PageSize})
		if err != nil {
			return loadedMsg{err: err}
		}
		acc := map[string]float64{}
		for _, rec := range records {
			if _, seen := acc[rec.SkillID]; seen {
				continue
			}
			// Accuracy is decoration; a failed lookup just omits it.
			if a, n, err := events.SkillAccuracy(ctx, rec.SkillID); err == nil && n > 0 {
				acc[rec.SkillID] = a
			}
		}
		return loadedMsg{records: records, accuracy: acc}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.state = "Error: " + msg.err.Error()
			return s, nil
		}
		s.records, s.accuracy, s.state = msg.records, msg.accuracy, "ready"
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.records)-1), 0)
		case "enter":
			s.open[s.cursor] = !s.open[s.cursor]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.state == "loading":
		return notice(width, "Loading history...", theme.TextDim)
	case s.state != "ready":
		return notice(width, s.state, theme.Error)
	case len(s.records) == 0:
		return notice(width, "No lessons yet. Start practicing!", theme.TextDim)
	}

	row := lipgloss.NewStyle().Foreground(theme.Text)
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.records {
		line := row.Render("  " + FormatRecord(rec))
		if i == s.cursor {
			line = active.Render("> " + FormatRecord(rec))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n")
		if s.open[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(s.detail(rec))) + "\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) detail(rec store.SessionSummaryRecord) string {
	d := fmt.Sprintf("    %s  %d/%d correct  +%d XP",
		rec.SessionID, rec.CorrectAnswers, rec.ExercisesServed, rec.XPEarned)
	if a, ok := s.accuracy[rec.SkillID]; ok {
		d += fmt.Sprintf("  lifetime %.0f%%", a*100)
	}
	return d
}

func notice(width int, text string, fg color.Color) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg).
		Render("\n\n" + text)
}

// FormatRecord renders one lesson as a single line: date, skill, duration,
// exercises served and accuracy.
func FormatRecord(rec store.SessionSummaryRecord) string {
	var accuracy float64
	if rec.ExercisesServed > 0 {
		accuracy = float64(rec.CorrectAnswers) / float64(rec.ExercisesServed) * 100
	}
	return fmt.Sprintf("%s  %-10s %d:%02d  %d exercises  %.0f%% accuracy",
		rec.Timestamp.Format("Jan 02, 2006"), rec.SkillID,
		rec.DurationSecs/60, rec.DurationSecs%60,
		rec.ExercisesServed, accuracy)
}
