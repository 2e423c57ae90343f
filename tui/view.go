package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/style"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case browseState:
		output = listExtraPaddingStyle.Render(b.browseC.View())
	case promptState:
		output = b.viewPrompt()
	case chooseState:
		output = listExtraPaddingStyle.Render(b.choicesC.View())
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewPrompt() string {
	title := "Go to channel"
	if request, ok := b.prompt.Get(); ok {
		title = "Search " + strings.ToLower(request.heading)
	}

	lines := []string{
		style.Title(title),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlaying() string {
	if b.playing == nil {
		return b.renderLines(true, []string{style.Title("Now Playing")})
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Colored(icon.Play), style.Fg(style.AccentColor)(b.playing.Row.Label))),
	}

	if b.playing.Row.Plot != "" {
		lines = append(lines, "", wrap.String(style.Faint(b.playing.Row.Plot), b.width))
	}

	if b.playing.Adaptive {
		lines = append(lines, "", style.Faint("Adaptive quality"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Colored(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
