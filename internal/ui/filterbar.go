package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"diagdeck/internal/diag"
	"diagdeck/internal/diagfmt"
)

var groupColors = map[diag.Group]lipgloss.Color{
	diag.GroupErrors:   lipgloss.Color("1"),
	diag.GroupWarnings: lipgloss.Color("3"),
	diag.GroupReview:   lipgloss.Color("6"),
}

// FilterButton is one rendered group toggle.
type FilterButton struct {
	Group  diag.Group
	Label  string
	Icon   diag.Icon
	Count  int
	Active bool
}

// FilterButtons builds the toggles in display order.
func FilterButtons(tally diag.Tally, set diag.GroupSet) ([]FilterButton, error) {
	groups := diag.Groups()
	out := make([]FilterButton, 0, len(groups))
	for _, g := range groups {
		label, err := diag.DisplayName(g)
		if err != nil {
			return nil, err
		}
		icon, err := diag.IconFor(g)
		if err != nil {
			return nil, err
		}
		out = append(out, FilterButton{
			Group:  g,
			Label:  label,
			Icon:   icon,
			Count:  tally.Of(g),
			Active: set.Has(g),
		})
	}
	return out, nil
}

// RenderFilterBar renders the group toggles on one line, fitted to width
// (0 means unlimited). Active buttons are coloured, inactive ones faint.
func RenderFilterBar(tally diag.Tally, set diag.GroupSet, width int) (string, error) {
	buttons, err := FilterButtons(tally, set)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		text := fmt.Sprintf("%s %s %d", diagfmt.Glyph(b.Icon), b.Label, b.Count)
		style := lipgloss.NewStyle().Padding(0, 1)
		if b.Active {
			style = style.Bold(true).Foreground(groupColors[b.Group])
		} else {
			style = style.Faint(true)
		}
		parts = append(parts, style.Render(text))
	}
	line := strings.Join(parts, " ")
	if width > 0 && lipgloss.Width(line) > width {
		// без стилей, чтобы не резать escape-последовательности
		plain := make([]string, 0, len(buttons))
		for _, b := range buttons {
			plain = append(plain, fmt.Sprintf("%s %d", diagfmt.Glyph(b.Icon), b.Count))
		}
		line = truncate(strings.Join(plain, "  "), width)
	}
	return line, nil
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
