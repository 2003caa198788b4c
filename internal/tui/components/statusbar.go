package components

import (
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// NoticeKind selects the color of a status bar notice.
type NoticeKind int

// Notice kinds.
const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current notice, if any, on the right.
func RenderStatusBar(width int, hints, notice string, kind NoticeKind) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	noticeColor := t.Accent
	switch kind {
	case NoticeSuccess:
		noticeColor = t.GreenBright
	case NoticeError:
		noticeColor = t.Red
	}
	noticeStyle := lipgloss.NewStyle().Foreground(noticeColor).Background(t.Surface).Bold(true)

	left := base.Render(" " + hints)
	right := ""
	if notice != "" {
		right = noticeStyle.Render(notice + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		// Notice wins over hints when space is short.
		left = ""
		padding = max(0, width-lipgloss.Width(right))
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
