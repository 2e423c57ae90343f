package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlive-cli/dlive/quality"
)

// promptRequest asks the bubble for a search text.
type promptRequest struct {
	kind    string
	heading string
	reply   chan promptReply
}

type promptReply struct {
	text string
	ok   bool
}

// chooseRequest asks the bubble to pick one of options.
type chooseRequest struct {
	heading string
	options []string
	reply   chan int
}

// host answers the dispatcher's prompts from inside the bubble.
// Dispatches run in command goroutines, so every question travels to the
// bubble as a message and the answer comes back over a channel.
type host struct {
	prompts chan promptRequest
	choices chan chooseRequest
	done    <-chan struct{}
}

func newHost(done <-chan struct{}) *host {
	return &host{
		prompts: make(chan promptRequest),
		choices: make(chan chooseRequest),
		done:    done,
	}
}

// Prompt implements dispatch.Prompter.
func (h *host) Prompt(kind, heading string) (string, bool) {
	reply := make(chan promptReply, 1)
	select {
	case h.prompts <- promptRequest{kind: kind, heading: heading, reply: reply}:
	case <-h.done:
		return "", false
	}

	select {
	case r := <-reply:
		return r.text, r.ok
	case <-h.done:
		return "", false
	}
}

// Choose implements quality.Chooser.
func (h *host) Choose(heading string, options []string) int {
	reply := make(chan int, 1)
	select {
	case h.choices <- chooseRequest{heading: heading, options: options, reply: reply}:
	case <-h.done:
		return quality.Cancelled
	}

	select {
	case index := <-reply:
		return index
	case <-h.done:
		return quality.Cancelled
	}
}

// waitForRequest delivers the next question as a message.
func (h *host) waitForRequest() tea.Cmd {
	return func() tea.Msg {
		select {
		case request := <-h.prompts:
			return request
		case request := <-h.choices:
			return request
		case <-h.done:
			return nil
		}
	}
}
