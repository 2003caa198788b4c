package tui

import (
	"time"

	"github.com/theirongolddev/runway/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long a status bar notice stays visible.
const noticeTTL = 3 * time.Second

type notice struct {
	text string
	kind components.NoticeKind
}

type noticeExpiredMsg struct {
	seq int
}

// setNotice shows text in the status bar and schedules its expiry. A newer
// notice supersedes the pending expiry of an older one.
func (a *App) setNotice(text string, kind components.NoticeKind) tea.Cmd {
	a.seq++
	a.notice = notice{text: text, kind: kind}
	seq := a.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
