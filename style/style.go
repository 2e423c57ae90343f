// Package style renders text with the DLive palette.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dlive-cli/dlive/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer drawing text in c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

// Truncate returns a renderer limiting text to max cells.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

func banner(bg lipgloss.Color) func(string) string {
	s := New().Foreground(TitleColor).Background(bg).Bold(true).Padding(0, 1)
	return func(text string) string { return s.Render(text) }
}

// Title heads a view. ErrorTitle heads the error view.
var (
	Title      = banner(AccentColor)
	ErrorTitle = banner(ErrorColor)
)

// Row accents, keyed by what a row or message stands for.
var (
	Live     = Fg(LiveColor)
	Offline  = Fg(OfflineColor)
	Category = Fg(CategoryColor)
	Replay   = Fg(ReplayColor)
	Warning  = Fg(ErrorColor)
	Success  = Fg(color.Green)
)
