package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init connects to DLive and starts listening for questions from dispatches.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.startLoading(), b.connect(), b.host.waitForRequest())
}
