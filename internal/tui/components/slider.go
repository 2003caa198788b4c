package components

import (
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Slider renders a horizontal track with a knob at value's position in
// lo..hi. Values outside the range pin the knob to the nearest end.
func Slider(value, lo, hi float64, width int, focused bool) string {
	t := theme.Active
	if width < 3 {
		width = 3
	}

	pos := 0
	if hi > lo {
		frac := (value - lo) / (hi - lo)
		pos = int(min(max(frac, 0), 1) * float64(width-1))
	}

	fillColor := t.Accent
	knobColor := t.TextMuted
	if focused {
		fillColor = t.AccentBright
		knobColor = t.AccentBright
	}

	fill := lipgloss.NewStyle().Foreground(fillColor).Background(t.Surface)
	track := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	knob := lipgloss.NewStyle().Foreground(knobColor).Background(t.Surface).Bold(true)

	return fill.Render(strings.Repeat("━", pos)) +
		knob.Render("●") +
		track.Render(strings.Repeat("─", width-1-pos))
}
