package lesson

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/ui/components"
	"github.com/abhisek/bhasha/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return centered(width, theme.TextDim).Render("\n\n\n  Preparing your lesson...")
	case phaseError:
		return centered(width, theme.Error).
			Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", s.errMsg))
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Text).Bold(true).Render(s.current.Prompt))
	b.WriteString("\n\n")

	switch s.phase {
	case phaseUngradable:
		b.WriteString(centered(width, theme.Accent).
			Render(fmt.Sprintf("%q exercises are not supported yet.", s.current.Kind)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.TextDim).Render("Press Enter to skip."))
		return b.String()
	case phaseAnswer, phaseFeedback:
		b.WriteString(s.renderInput(width))
	}

	if s.phase == phaseFeedback {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *LessonScreen) renderInfoLine(width int) string {
	served, total := s.ctrl.Progress()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.skillName))
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Exercise %d/%d  %s",
			served, total,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d XP", s.ctrl.SessionXP()))))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	var pct float64
	if total > 0 {
		pct = float64(served) / float64(total)
	}
	bar := components.NewProgressBar("", pct, false, max(width-8, 10)).View()
	return line + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

func (s *LessonScreen) renderInput(width int) string {
	var block string
	switch s.mode {
	case inputChoice:
		block = s.choice.View()
	case inputText:
		block = "Answer: " + s.input.View()
	case inputTiles:
		block = s.picker.View(" ")
	case inputCharacters:
		block = s.picker.View("")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *LessonScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.result.Correct {
		b.WriteString(centered(width, theme.Success).Bold(true).Render(s.result.Feedback))
	} else {
		b.WriteString(centered(width, theme.Error).Bold(true).Render(s.result.Feedback))
		if s.current.Kind != exercise.KindMultipleChoice {
			b.WriteString("\n")
			b.WriteString(centered(width, theme.TextDim).
				Render("Correct answer: " + s.current.CorrectAnswer()))
		}
	}
	b.WriteString("\n\n")

	if s.noticeMsg != "" {
		b.WriteString(centered(width, theme.Accent).Render(s.noticeMsg))
	} else {
		b.WriteString(centered(width, theme.TextDim).
			Render("How hard was it? 1 Hard  2 Medium  3 Easy"))
	}
	b.WriteString("\n")
	b.WriteString(centered(width, theme.TextDim).Render("Press Enter to continue..."))
	return b.String()
}

func centered(width int, fg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg)
}
