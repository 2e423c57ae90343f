// Package color names the colors used by the CLI and the TUI.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the terminal theme. Plain command output uses these.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
)

// DLive brand colors.
var (
	Gold   = New("#ffd300")
	Amber  = New("#f5a623")
	Coral  = New("#ff4d4d")
	Sky    = New("#5ec8e5")
	Violet = New("#b18cff")
	Ash    = New("#7d7f87")
	Ink    = New("#141519")
	Paper  = New("#e6e6e6")
)
