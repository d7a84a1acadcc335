package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
	noticeInfo
)

// Notification texts shown for store and search outcomes.
const (
	textAdded     = "Added to Liked Songs"
	textDuplicate = "Song already in your list"
	textNoResults = "No results"
	textFailed    = "Search failed: "
)

type notification struct {
	id   int
	kind noticeKind
	text string
}

func (n notification) View() string {
	switch n.kind {
	case noticeSuccess:
		return styles.notice.Inherit(styles.ok).Render("✓ " + n.text)
	case noticeError:
		return styles.notice.Inherit(styles.err).Render("✗ " + n.text)
	default:
		return styles.notice.Inherit(styles.warn).Render(n.text)
	}
}

// notify replaces the current notification and schedules its dismissal.
// Only the matching id is dismissed, so a newer notification survives an older timer.
func (m *Model) notify(kind noticeKind, text string) tea.Cmd {
	m.noticeSeq++
	id := m.noticeSeq
	m.notice = &notification{id: id, kind: kind, text: text}

	return tea.Tick(m.noticeDuration, func(time.Time) tea.Msg {
		return dismissMsg(id)
	})
}

func (m *Model) dismiss(id int) {
	if m.notice != nil && m.notice.id == id {
		m.notice = nil
	}
}
