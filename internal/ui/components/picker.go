package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bhasha/internal/ui/theme"
)

// Picker builds an answer by picking numbered entries from a bank. Digits
// append an entry, Backspace removes the last one. With Reusable set the
// same entry may be picked more than once, as needed for character banks.
type Picker struct {
	Bank     []string
	Reusable bool
	Picked   []int
}

// NewPicker creates a picker over bank.
func NewPicker(bank []string, reusable bool) Picker {
	return Picker{Bank: bank, Reusable: reusable}
}

// Update handles digit and backspace keys.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "backspace":
		if len(p.Picked) > 0 {
			p.Picked = p.Picked[:len(p.Picked)-1]
		}
	default:
		idx, ok := digitIndex(key)
		if !ok || idx >= len(p.Bank) {
			return p, nil
		}
		if !p.Reusable && p.used(idx) {
			return p, nil
		}
		p.Picked = append(p.Picked, idx)
	}
	return p, nil
}

func (p Picker) used(idx int) bool {
	for _, i := range p.Picked {
		if i == idx {
			return true
		}
	}
	return false
}

// Values returns the picked entries in order.
func (p Picker) Values() []string {
	out := make([]string, len(p.Picked))
	for i, idx := range p.Picked {
		out[i] = p.Bank[idx]
	}
	return out
}

// Answer joins the picked entries with sep.
func (p Picker) Answer(sep string) string {
	return strings.Join(p.Values(), sep)
}

// Empty reports whether nothing has been picked.
func (p Picker) Empty() bool {
	return len(p.Picked) == 0
}

// View renders the answer built so far above the numbered bank.
func (p Picker) View(joiner string) string {
	built := strings.Join(p.Values(), joiner)
	if built == "" {
		built = lipgloss.NewStyle().Foreground(theme.TextDim).Render("…")
	} else {
		built = theme.Prompt.Render(built)
	}

	tiles := make([]string, len(p.Bank))
	for i, entry := range p.Bank {
		label := fmt.Sprintf("%d %s", i+1, entry)
		if !p.Reusable && p.used(i) {
			tiles[i] = theme.TileUsed.Render(label)
		} else {
			tiles[i] = theme.Tile.Render(label)
		}
	}
	return built + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
