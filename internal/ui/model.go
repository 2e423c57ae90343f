// Package ui renders short lived notifications below a terminal view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// NotificationMsg shows Text until Lifetime passes or another one replaces it.
type NotificationMsg struct {
	Text string
}

// clearMsg removes the notification it was scheduled for.
type clearMsg struct {
	generation int
}

// Model holds the current notification.
type Model struct {
	notification string
	generation   int
}

// Notify returns a command showing text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// Update handles notification messages and reports whether msg was one.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.generation++
		generation := m.generation
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return clearMsg{generation: generation}
		}), true
	case clearMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
		return nil, true
	}
	return nil, false
}

// Notification is the text shown, empty for none.
func (m *Model) Notification() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  \033[90m" + m.notification + "\033[0m"
	return strings.Join(lines, "\n")
}
