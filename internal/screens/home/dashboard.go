package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/ui/theme"
)

const titleFull = `╔╗ ╦ ╦╔═╗╔═╗╦ ╦╔═╗
╠╩╗╠═╣╠═╣╚═╗╠═╣╠═╣
╚═╝╩ ╩╩ ╩╚═╝╩ ╩╩ ╩`

const titleCompact = "B · H · A · S · H · A"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(language string, cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub.Render("Learning "+language))
}

// stats is the dashboard row shown above the menu.
type stats struct {
	XP         int
	Streak     int
	ReviewsDue int
	Lessons    int
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			xpStyle.Render(fmt.Sprintf("%dXP", st.XP)),
			streakStyle.Render(fmt.Sprintf("🔥%d", st.Streak)),
			reviewText(st.ReviewsDue, true, reviewStyle, dimStyle),
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s  %s",
			xpStyle.Render(fmt.Sprintf("%d XP", st.XP)),
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", st.Streak)),
			reviewText(st.ReviewsDue, false, reviewStyle, dimStyle),
			dimStyle.Render(fmt.Sprintf("%d LESSONS", st.Lessons)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func reviewText(due int, compact bool, active, dim lipgloss.Style) string {
	if due == 0 {
		if compact {
			return dim.Render("↻0")
		}
		return dim.Render("↻ NONE DUE")
	}
	if compact {
		return active.Render(fmt.Sprintf("↻%d", due))
	}
	return active.Render(fmt.Sprintf("↻ %d DUE", due))
}

// renderFrame wraps content in a double-border frame, centered vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
