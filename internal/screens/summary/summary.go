package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/router"
	"github.com/abhisek/bhasha/internal/screen"
	"github.com/abhisek/bhasha/internal/session"
	"github.com/abhisek/bhasha/internal/ui/layout"
	"github.com/abhisek/bhasha/internal/ui/theme"
)

// SummaryScreen displays the result of a finished lesson.
type SummaryScreen struct {
	summary   *session.SessionSummary
	skillName string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary, skillName string) *SummaryScreen {
	return &SummaryScreen{summary: summary, skillName: skillName}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(line(width, theme.Primary, true, "Lesson complete!"))
	b.WriteString("\n")
	if s.skillName != "" {
		b.WriteString(line(width, theme.Secondary, false, s.skillName))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(line(width, theme.TextDim, false, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(line(width, theme.Text, false, stats))
	b.WriteString("\n")
	b.WriteString(line(width, theme.Accent, true, fmt.Sprintf("+%d XP", sum.XPEarned)))
	b.WriteString("\n\n")

	if len(sum.Answers) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(line(width, theme.TextDim, false, "Answers"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, a := range sum.Answers {
		mark, fg := "✗", theme.Error
		if a.Correct {
			mark, fg = "✓", theme.Success
		}
		text := fmt.Sprintf("%s  %-12s %s", mark, a.ExerciseID, a.Feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(fg).Render(text)))
		b.WriteString("\n")
	}

	return b.String()
}

func line(width int, fg color.Color, bold bool, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(bold).
		Render(text)
}
