package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type clearNoticeMsg struct{ id int }

const noticeDuration = 3 * time.Second

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	var icon string
	switch kind {
	case "info":
		icon = "ℹ"
	case "success":
		icon = "✓"
	case "warn":
		icon = "!"
	case "error":
		icon = "×"
	}
	if icon == "" {
		return msg
	}
	return icon + " " + msg
}

// startNotice shows msg until d elapses or a newer notice replaces it.
func (m *Model) startNotice(msg, kind string, d time.Duration) tea.Cmd {
	m.noticeMsg = msg
	m.noticeKind = kind
	m.noticeSeq++
	id := m.noticeSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *Model) clearNotice(id int) {
	if id != m.noticeSeq {
		return
	}
	m.noticeMsg = ""
	m.noticeKind = ""
}
